package internal

import (
	"net/http"

	"mihrab/internal/controllers"
	"mihrab/internal/providers"
)

func InitRoutes(apiController *controllers.ApiController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/api/times", http.HandlerFunc(apiController.GetTimes))
	routers.Get("/api/next", http.HandlerFunc(apiController.GetNext))
	routers.Get("/api/qibla", http.HandlerFunc(apiController.GetQibla))
	routers.Get("/api/streaks", http.HandlerFunc(apiController.GetStreaks))
	routers.Post("/api/log", http.HandlerFunc(apiController.LogCompletion))
	routers.Post("/api/reminders", http.HandlerFunc(apiController.SetReminder))
	return routers
}
