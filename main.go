package main

import (
	"log"
	"net/http"
	"os"

	"fundadmin/controllers"
	"fundadmin/database"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found:", err)
	}

	database.Connect()
	database.Migrate()

	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/investors", controllers.CreateInvestorHandler).Methods(http.MethodPost)
	api.HandleFunc("/investors", controllers.ListInvestorsHandler).Methods(http.MethodGet)

	api.HandleFunc("/structures", controllers.CreateStructureHandler).Methods(http.MethodPost)
	api.HandleFunc("/structures", controllers.ListStructuresHandler).Methods(http.MethodGet)
	api.HandleFunc("/structures/{id}", controllers.GetStructureHandler).Methods(http.MethodGet)
	api.HandleFunc("/structures/{id}/investors", controllers.AddInvestorRecordHandler).Methods(http.MethodPost)
	api.HandleFunc("/structures/{id}/investors", controllers.ListInvestorRecordsHandler).Methods(http.MethodGet)
	api.HandleFunc("/structures/{id}/cumulative-called", controllers.CumulativeCalledHandler).Methods(http.MethodGet)

	api.HandleFunc("/calls", controllers.CreateCallHandler).Methods(http.MethodPost)
	api.HandleFunc("/calls", controllers.ListCallsHandler).Methods(http.MethodGet)
	api.HandleFunc("/calls/{id}", controllers.GetCallHandler).Methods(http.MethodGet)
	api.HandleFunc("/calls/{id}", controllers.DeleteCallHandler).Methods(http.MethodDelete)
	api.HandleFunc("/calls/{id}/allocations", controllers.BuildAllocationsHandler).Methods(http.MethodPost)
	api.HandleFunc("/calls/{id}/allocations", controllers.ListAllocationsHandler).Methods(http.MethodGet)
	api.HandleFunc("/calls/{id}/send", controllers.SendCallHandler).Methods(http.MethodPost)
	api.HandleFunc("/calls/{id}/notice-document", controllers.UploadNoticeDocumentHandler).Methods(http.MethodPost)

	api.HandleFunc("/cron/payment-reminders", controllers.CronPaymentRemindersHandler).Methods(http.MethodPost)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("server listening on :%s", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
