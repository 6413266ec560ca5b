package internal

import (
	"blueghost/internal/controllers"
	"blueghost/internal/providers"
	"net/http"
)

func InitRoutes(apiController *controllers.ApiController, pageController *controllers.PageController, authController *controllers.AuthController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.PublicGet("/login", http.HandlerFunc(authController.LoginForm))
	routers.PublicPost("/login", http.HandlerFunc(authController.Login))
	routers.Post("/logout", http.HandlerFunc(authController.Logout))

	routers.Get("/{$}", http.HandlerFunc(pageController.Home))
	routers.Post("/generate", http.HandlerFunc(pageController.Generate))
	routers.Get("/profile", http.HandlerFunc(pageController.Profile))
	routers.Get("/tips", http.HandlerFunc(pageController.Tips))
	routers.Get("/character", http.HandlerFunc(pageController.Character))
	routers.Post("/character", http.HandlerFunc(pageController.Character))
	routers.Get("/download", http.HandlerFunc(pageController.Download))

	routers.Get("/api/history", http.HandlerFunc(apiController.GetHistory))
	routers.Post("/api/stories", http.HandlerFunc(apiController.CreateStory))

	routers.Fallback(http.HandlerFunc(pageController.NotFound))
	return routers
}
