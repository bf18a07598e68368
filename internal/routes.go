package internal

import (
	"net/http"

	"clinicd/internal/controllers"
	"clinicd/internal/providers"
	"clinicd/internal/structures"
)

func InitRoutes(recordController *controllers.RecordController, backupController *controllers.BackupController, conf *structures.Config) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/patients", http.HandlerFunc(recordController.ListPatients))
	routers.Post("/patients", http.HandlerFunc(recordController.AddPatient))
	routers.Put("/patients", http.HandlerFunc(recordController.UpdatePatient))
	routers.Delete("/patients", http.HandlerFunc(recordController.DeletePatient))
	routers.Get("/patient", http.HandlerFunc(recordController.GetPatient))
	routers.Get("/search", http.HandlerFunc(recordController.SearchPatients))
	routers.Post("/medications", http.HandlerFunc(recordController.AddMedication))
	routers.Delete("/medications", http.HandlerFunc(recordController.DeleteMedication))
	routers.Put("/next-visit", http.HandlerFunc(recordController.SetNextVisit))

	routers.Get("/backup/config", http.HandlerFunc(backupController.GetBackupConfig))
	routers.Put("/backup/config", http.HandlerFunc(backupController.UpdateBackupConfig))
	routers.Get("/backup/history", http.HandlerFunc(backupController.GetBackupHistory))
	routers.Get("/snapshot", http.HandlerFunc(backupController.ExportSnapshot))
	routers.Post("/snapshot", http.HandlerFunc(backupController.ImportSnapshot))

	return routers
}
