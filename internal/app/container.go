package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/nekogravitycat/room-timeline-backend/internal/api"
	"github.com/nekogravitycat/room-timeline-backend/internal/board"
	"github.com/nekogravitycat/room-timeline-backend/internal/queue"
	"github.com/nekogravitycat/room-timeline-backend/internal/reservation"
	"github.com/nekogravitycat/room-timeline-backend/internal/room"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	// DBPool may be nil; the room catalog then uses the built-in hotel.
	DBPool       *pgxpool.Pool
	Redis        *redis.Client
	RoomCacheTTL time.Duration
	Publisher    queue.Publisher
	Layout       reservation.Layout
	// Clock overrides time.Now for boards.
	Clock func() time.Time
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router       *gin.Engine
	BoardService board.Service
	RoomService  room.Service
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	// Room Module
	var roomRepo room.Repository
	if cfg.DBPool != nil {
		roomRepo = room.NewPgxRepository(cfg.DBPool)
	} else {
		roomRepo = room.NewMemoryRepository(room.DefaultCatalog())
	}
	roomService := room.NewService(roomRepo, room.NewCache(cfg.Redis, cfg.RoomCacheTTL))

	// Board Module
	opts := []board.Option{board.WithLayout(cfg.Layout)}
	if cfg.Clock != nil {
		opts = append(opts, board.WithClock(cfg.Clock))
	}
	boardService := board.NewService(roomService, cfg.Publisher, opts...)

	// Router
	router := api.NewRouter(api.Config{
		IsProduction: cfg.IsProduction,
		ProdOrigins:  cfg.ProdOrigins,
		RoomService:  roomService,
		BoardService: boardService,
	})

	return &Container{
		Router:       router,
		BoardService: boardService,
		RoomService:  roomService,
	}
}
