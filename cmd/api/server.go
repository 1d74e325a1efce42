package main

import (
	"budget_tracker/internal/api/middlewares"
	"budget_tracker/internal/api/routers"
	"budget_tracker/internal/repositories/sqlconnect"
	"budget_tracker/pkg/cron"
	"budget_tracker/pkg/utils"
	"crypto/tls"
	"net/http"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	utils.InitLogger()

	if err := sqlconnect.ConnectDb(); err != nil {
		utils.Logger.Fatal("DB connection failed: ", err)
	}

	if err := sqlconnect.RunMigrations(); err != nil {
		utils.Logger.Fatal("DB migrations failed: ", err)
	}

	c := cron.StartCronJobs(sqlconnect.DB)
	defer c.Stop()

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = ":8080"
	}

	router := routers.MainRouter()
	jwtMiddleware := middlewares.MiddlewaresExcludePaths(middlewares.JWTMiddleware, "/auth/register", "/auth/login")
	secureMux := jwtMiddleware(middlewares.SecurityHeaders(router))

	server := &http.Server{
		Addr:    port,
		Handler: secureMux,
		TLSConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	}

	cert := os.Getenv("CERT_FILE")
	key := os.Getenv("KEY_FILE")

	utils.Logger.Info("Server is running on port ", port)

	var err error
	if cert != "" && key != "" {
		err = server.ListenAndServeTLS(cert, key)
	} else {
		err = server.ListenAndServe()
	}
	if err != nil {
		utils.Logger.Fatal("Error starting the server: ", err)
	}
}
