package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/segmentio/kafka-go"

	"github.com/mvineethr/virtual-closet-docker/internal/models"
	"github.com/mvineethr/virtual-closet-docker/internal/upload"
)

// Store is what the handlers need from the storage layer.
type Store interface {
	CreateItem(ctx context.Context, item *models.ClothingItem) error
	ListItems(ctx context.Context, filter models.ItemFilter) ([]models.ClothingItem, error)
	DeleteAllItems(ctx context.Context) (int64, error)
	DeletePlaceholderItems(ctx context.Context) (int64, error)
	CreateOutfit(ctx context.Context, name string, itemIDs []int64) (*models.Outfit, error)
	ListOutfits(ctx context.Context) ([]models.Outfit, error)
	ResolveOutfitItems(ctx context.Context, itemIDs []int64) ([]models.ClothingItem, error)
}

// eventWriter is the part of *kafka.Writer the server uses.
type eventWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type Server struct {
	cfg      *models.Config
	router   *gin.Engine
	db       Store
	uploads  *upload.Saver
	producer eventWriter
}

func NewServer(cfg *models.Config, db Store, uploads *upload.Saver, producer *kafka.Writer) *Server {
	r := gin.Default()
	r.Static(cfg.UploadRoute, cfg.UploadDir)

	s := &Server{cfg: cfg, router: r, db: db, uploads: uploads}
	if producer != nil {
		s.producer = producer
	}

	r.GET("/", s.handleRoot)
	r.POST("/add-clothing", s.handleAddClothing)
	r.GET("/clothes", s.handleListClothes)
	r.POST("/save-outfit", s.handleSaveOutfit)
	r.GET("/outfits", s.handleListOutfits)
	r.DELETE("/delete-all", s.handleDeleteAll)
	r.DELETE("/delete-placeholder-items", s.handleDeletePlaceholders)
	r.POST("/upload-clothing", s.handleUploadClothing)

	return s
}

func (s *Server) Start() error {
	return s.router.Run(s.cfg.ServerAddr)
}

func (s *Server) Stop() {
	// No shutdown needed for gin
}

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Welcome to your Virtual Closet API!"})
}

type addClothingRequest struct {
	Name        string `json:"name"`
	Color       string `json:"color"`
	GarmentType string `json:"garment_type"`
	ImageURL    string `json:"image_url"`
}

func (s *Server) handleAddClothing(c *gin.Context) {
	var req addClothingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Name == "" || req.Color == "" || req.GarmentType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, color and garment_type are required"})
		return
	}

	item := models.ClothingItem{
		Name:        req.Name,
		Color:       req.Color,
		GarmentType: req.GarmentType,
		ImageURL:    req.ImageURL,
	}
	if err := s.db.CreateItem(c.Request.Context(), &item); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s.publishEvent(c.Request.Context(), models.ClosetEvent{
		Action: models.EventItemCreated,
		ItemID: item.ID,
		Name:   item.Name,
	})

	c.JSON(http.StatusOK, item)
}

func (s *Server) handleListClothes(c *gin.Context) {
	filter := models.ItemFilter{
		GarmentType: c.Query("garment_type"),
		Color:       c.Query("color"),
	}

	items, err := s.db.ListItems(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if items == nil {
		items = []models.ClothingItem{}
	}
	c.JSON(http.StatusOK, items)
}

type saveOutfitRequest struct {
	Name    string  `json:"name"`
	ItemIDs []int64 `json:"item_ids"`
}

func (s *Server) handleSaveOutfit(c *gin.Context) {
	var req saveOutfitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	if len(req.ItemIDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "item_ids must not be empty"})
		return
	}

	outfit, err := s.db.CreateOutfit(c.Request.Context(), req.Name, req.ItemIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s.publishEvent(c.Request.Context(), models.ClosetEvent{
		Action: models.EventOutfitCreated,
		Name:   outfit.Name,
	})

	c.JSON(http.StatusOK, gin.H{"message": "outfit saved", "outfit": outfit})
}

func (s *Server) handleListOutfits(c *gin.Context) {
	outfits, err := s.db.ListOutfits(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	expanded := make([]models.ExpandedOutfit, 0, len(outfits))
	for _, outfit := range outfits {
		items, err := s.db.ResolveOutfitItems(c.Request.Context(), outfit.ItemIDs)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if items == nil {
			items = []models.ClothingItem{}
		}
		expanded = append(expanded, models.ExpandedOutfit{
			ID:    outfit.ID,
			Name:  outfit.Name,
			Items: items,
		})
	}
	c.JSON(http.StatusOK, expanded)
}

func (s *Server) handleDeleteAll(c *gin.Context) {
	count, err := s.db.DeleteAllItems(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s.publishEvent(c.Request.Context(), models.ClosetEvent{
		Action: models.EventItemsCleared,
		Count:  count,
	})

	c.JSON(http.StatusOK, gin.H{"message": "all clothing items deleted", "count": count})
}

func (s *Server) handleDeletePlaceholders(c *gin.Context) {
	count, err := s.db.DeletePlaceholderItems(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "placeholder items deleted", "count": count})
}

func (s *Server) handleUploadClothing(c *gin.Context) {
	name := c.PostForm("name")
	color := c.PostForm("color")
	garmentType := c.PostForm("garment_type")

	// Validate before touching the disk so a rejected request leaves no file.
	if name == "" || color == "" || garmentType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, color and garment_type are required"})
		return
	}
	if isPlaceholder(name) || isPlaceholder(color) || isPlaceholder(garmentType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": `fields must not be the placeholder value "string"`})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer src.Close()

	saved, err := s.uploads.Save(file.Filename, src)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	item := models.ClothingItem{
		Name:         name,
		Color:        color,
		GarmentType:  garmentType,
		ImageURL:     saved.URL,
		ThumbnailURL: saved.ThumbnailURL,
	}
	if err := s.db.CreateItem(c.Request.Context(), &item); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s.publishEvent(c.Request.Context(), models.ClosetEvent{
		Action: models.EventItemCreated,
		ItemID: item.ID,
		Name:   item.Name,
	})

	c.JSON(http.StatusOK, gin.H{"message": "clothing item uploaded", "item": item})
}

// isPlaceholder reports whether a field still holds the unedited
// API-documentation default.
func isPlaceholder(v string) bool {
	return strings.EqualFold(v, "string")
}

// publishEvent sends a closet change notification to Kafka. Publishing is
// best effort: failures are logged and never fail the request.
func (s *Server) publishEvent(ctx context.Context, event models.ClosetEvent) {
	if s.producer == nil {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("error encoding closet event: %v", err)
		return
	}
	if err := s.producer.WriteMessages(ctx, kafka.Message{Value: payload}); err != nil {
		log.Printf("error publishing closet event: %v", err)
	}
}
