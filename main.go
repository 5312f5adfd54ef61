package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	auth "Glidepath/internal/auth"
	cdfa "Glidepath/internal/calc/cdfa"
	dmetable "Glidepath/internal/calc/dmetable"
	export "Glidepath/internal/calc/export"
	geometry "Glidepath/internal/calc/geometry"
	autodesign "Glidepath/internal/calc/premium/autodesign"
	batch "Glidepath/internal/calc/premium/batch"
	importer "Glidepath/internal/calc/premium/importer"
	recommend "Glidepath/internal/calc/premium/recommend"
	report "Glidepath/internal/calc/report"
	rod "Glidepath/internal/calc/rod"
	procedures "Glidepath/internal/procedures"
	repo "Glidepath/internal/repo"
)

var wg sync.WaitGroup

func CORS(mux *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		mux.ServeHTTP(w, r)
	})
}

func HandleList(mux *mux.Router, db *sql.DB) {
	userRepo := repo.NewPostgresDB(db)
	tokenKey := os.Getenv("TOKEN_KEY")
	if tokenKey == "" {
		log.Fatal("TOKEN_KEY environment variable is not set")
	}

	authSvc := &auth.Service{JWTKey: []byte(tokenKey), Repo: userRepo}
	procsH := &procedures.Handler{Repo: userRepo}

	limiter := auth.NewIPRateLimiter(1, 3)

	api := mux.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	api.HandleFunc("/login", authSvc.LoginHandler).Methods("POST")
	api.HandleFunc("/register", authSvc.RegisterHandler).Methods("POST")

	secureApi := api.PathPrefix("/user").Subrouter()
	secureApi.Use(authSvc.AuthMiddleware)

	geometryH := &geometry.Handler{}
	dmetableH := &dmetable.Handler{}
	rodH := &rod.Handler{}
	cdfaH := &cdfa.Handler{}
	reportH := &report.Handler{}
	exportH := &export.Handler{}
	batchH := &batch.Handler{}
	importerH := &importer.Handler{}
	recommendH := &recommend.Handler{}
	autodesignH := &autodesign.Handler{}

	secureApi.HandleFunc("/tools/geometry/calc", geometryH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/dmetable/calc", dmetableH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/rod/calc", rodH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/cdfa/calc", cdfaH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/report/pdf", reportH.Generate).Methods("POST")
	secureApi.HandleFunc("/tools/export/csv", exportH.Csv).Methods("POST")
	secureApi.HandleFunc("/tools/export/xlsx", exportH.Xlsx).Methods("POST")

	secureApi.HandleFunc("/tools-premium/batch/calc", batchH.Profiles).Methods("POST")
	secureApi.HandleFunc("/tools-premium/import/xlsx", importerH.Profiles).Methods("POST")
	secureApi.HandleFunc("/tools-premium/advisory/angle", recommendH.Angle).Methods("POST")
	secureApi.HandleFunc("/tools-premium/autofaf/calc", autodesignH.Profile).Methods("POST")

	secureApi.HandleFunc("/procedures", procsH.Save).Methods("POST")
	secureApi.HandleFunc("/procedures", procsH.List).Methods("GET")
	secureApi.HandleFunc("/procedures/{id:[0-9]+}", procsH.Get).Methods("GET")

	mainFileServer := http.FileServer(http.Dir("./static/main"))
	mux.PathPrefix("/").
		Handler(mainFileServer)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// .env must be loaded before InitDB reads DATABASE_URL.
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment as-is")
	}

	db := auth.InitDB()
	defer db.Close()
	mux := mux.NewRouter()

	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":8443"
	}
	log.Println("Starting server on", addr)
	HandleList(mux, db)
	handler := CORS(mux)

	server := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := server.ListenAndServeTLS("server.crt", "server.key"); err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutdown signal received, closing active connections")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")

	wg.Wait()
}
