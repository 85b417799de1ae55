package routes

import (
	"net/http"
	"os"
	"path/filepath"

	"wastetrack/internal/auth"
	"wastetrack/internal/config"
	"wastetrack/internal/detect"
	"wastetrack/internal/events"
	"wastetrack/internal/handlers"
	"wastetrack/internal/hub"
	"wastetrack/internal/logger"
	"wastetrack/internal/middleware"
	"wastetrack/internal/repository"
)

// Deps carries everything the route handlers need.
type Deps struct {
	Config     *config.Config
	Logger     *logger.Logger
	Sessions   *auth.SessionStore
	Users      repository.UserRepository
	Detections repository.DetectionRepository
	Processor  *detect.Processor
	Video      *detect.VideoProcessor
	Hub        *hub.Hub
	Events     *events.Publisher
}

// dynamicHTMLHandler serves /path as <static>/path.html if the file exists; otherwise 404.
func dynamicHTMLHandler(staticDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		if path == "/" {
			path = "/index"
		}

		filePath := filepath.Join(staticDir, path+".html")
		if _, err := os.Stat(filePath); os.IsNotExist(err) {
			http.NotFound(w, r)
			return
		}
		http.ServeFile(w, r, filePath)
	}
}

// Setup registers HTTP routes, static file serving, API endpoints, and wraps
// the mux with the authentication middleware.
func Setup(d Deps) http.Handler {
	mux := http.NewServeMux()

	// Static files (uploads and processed videos live under static/)
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(d.Config.StaticDirectory))))

	// API endpoints
	mux.HandleFunc("/api/upload", handlers.UploadHandler(d.Config, d.Processor, d.Video, d.Detections, d.Events, d.Logger))
	mux.HandleFunc("/api/frame", handlers.FrameHandler(d.Config, d.Processor, d.Detections, d.Hub, d.Logger))
	mux.HandleFunc("/api/detections", handlers.ListDetectionsHandler(d.Detections, d.Logger))
	mux.HandleFunc("/api/reports", handlers.ReportsHandler(d.Detections, d.Logger))
	mux.HandleFunc("/api/reports/download", handlers.DownloadReportHandler(d.Detections, d.Logger))
	mux.HandleFunc("/api/view", handlers.ViewWebsocketHandler(d.Hub, d.Logger))

	// Log endpoints
	mux.HandleFunc("/logs/info", handlers.ShowInfoLogsHandler(d.Config))
	mux.HandleFunc("/logs/warning", handlers.ShowWarningLogsHandler(d.Config))
	mux.HandleFunc("/logs/error", handlers.ShowErrorLogsHandler(d.Config))

	mux.HandleFunc("/logs/info/clear", handlers.ClearInfoLogsHandler(d.Logger))
	mux.HandleFunc("/logs/warning/clear", handlers.ClearWarningLogsHandler(d.Logger))
	mux.HandleFunc("/logs/error/clear", handlers.ClearErrorLogsHandler(d.Logger))

	// Auth endpoints
	mux.HandleFunc("/auth/signup", handlers.SignupHandler(d.Users, d.Sessions, d.Logger))
	mux.HandleFunc("/auth/login", handlers.LoginHandler(d.Users, d.Sessions, d.Logger))
	mux.HandleFunc("/auth/logout", handlers.LogoutHandler(d.Sessions))

	// Automatic HTML handler mapping, for example /reports -> static/reports.html
	mux.HandleFunc("/", dynamicHTMLHandler(d.Config.StaticDirectory))

	return middleware.Auth(d.Sessions, mux)
}
