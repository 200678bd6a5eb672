package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"venue-rank-go/config"
	"venue-rank-go/internal/cache"
	"venue-rank-go/internal/handler"
	"venue-rank-go/internal/model"
	"venue-rank-go/internal/override"
	"venue-rank-go/internal/service"
	"venue-rank-go/internal/source"
)

func main() {
	// 加载 .env 文件（如果存在）
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	// 加载参考表（缺表只降级成空source，不挡启动）
	sjrEntries := loadTable(cfg.TablePath("sjr"), "SJR")
	coreEntries := loadTable(cfg.TablePath("core"), "CORE")
	absEntries := loadTable(cfg.TablePath("abs"), "ABS")

	// 覆盖存储（优先使用PostgreSQL，否则使用JSON文件）
	var backend override.BlobBackend
	if cfg.DatabaseURL != "" {
		pgBackend, err := override.NewPostgresBackend(cfg.DatabaseURL)
		if err != nil {
			log.Printf("Warning: Failed to connect to PostgreSQL, using file backend: %v", err)
		} else {
			log.Println("Using PostgreSQL override backend")
			backend = pgBackend
		}
	}
	if backend == nil {
		fileBackend, err := override.NewFileBackend(cfg.OverridesPath)
		if err != nil {
			log.Fatalf("Failed to create override file backend: %v", err)
		}
		log.Printf("Using file override backend: %s", cfg.OverridesPath)
		backend = fileBackend
	}

	overrides := override.NewStore(backend)
	if err := overrides.Load(); err != nil {
		log.Fatalf("Failed to load overrides: %v", err)
	}
	log.Printf("Loaded %d overrides", overrides.Count())

	// source注册表：SJR和CORE可开关，ABS始终启用
	prefs := source.NewPrefs(map[string]bool{
		"sjr":  cfg.SJREnabled,
		"core": cfg.CoreEnabled,
	})
	registry := source.NewRegistry(prefs)
	registry.Register(source.NewSJRSource(sjrEntries, "sjr", 1))
	registry.Register(source.NewCoreSource(coreEntries, "core", 2))
	registry.Register(source.NewABSSource(absEntries, "", 3))

	resultCache := cache.NewResultCache()
	resolver := service.NewResolver(registry, overrides, resultCache)

	// 创建处理器
	resolveHandler := handler.NewResolveHandler(resolver)
	overrideHandler := handler.NewOverrideHandler(overrides, resolver)
	sourceHandler := handler.NewSourceHandler(registry, prefs, resolver)

	// 设置路由
	mux := http.NewServeMux()
	mux.HandleFunc("/health", resolveHandler.Health)
	mux.HandleFunc("/api/resolve", resolveHandler.Resolve)
	mux.HandleFunc("/api/resolve/items", resolveHandler.ResolveItemsSSE)
	mux.HandleFunc("/api/overrides", overrideHandler.Handle)
	mux.HandleFunc("/api/sources", sourceHandler.List)
	mux.HandleFunc("/api/sources/toggle", sourceHandler.Toggle)

	// CORS中间件
	corsHandler := corsMiddleware(mux)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, corsHandler); err != nil {
		log.Fatal(err)
	}
}

// loadTable 加载一份参考表，失败时返回空表并告警
func loadTable(path, name string) []model.ReferenceEntry {
	entries, err := source.LoadEntriesJSON(path)
	if err != nil {
		log.Printf("Warning: %s table not loaded from %s: %v", name, path, err)
		return nil
	}
	log.Printf("Loaded %s table: %d entries", name, len(entries))
	return entries
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
