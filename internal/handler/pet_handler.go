package handler

import (
	"encoding/json"
	"io"
	"mime/multipart"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/GuiAmaralD/pet-adoption-system/internal/application"
	"github.com/GuiAmaralD/pet-adoption-system/internal/auth"
	"github.com/GuiAmaralD/pet-adoption-system/internal/domain/media"
	"github.com/GuiAmaralD/pet-adoption-system/internal/middleware"
	"github.com/GuiAmaralD/pet-adoption-system/internal/response"
)

// PetHandler handles HTTP requests for pet listing operations.
type PetHandler struct {
	service *application.PetService
}

// NewPetHandler creates a new PetHandler.
func NewPetHandler(service *application.PetService) *PetHandler {
	return &PetHandler{service: service}
}

// RegisterRoutes registers all pet routes. Browsing is public; registering
// and marking adopted require an authenticated owner.
func (h *PetHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)

	pets := r.Group("/pet")
	{
		pets.GET("", h.ListAvailable)
		pets.GET("/filter", h.FilterPets)
		pets.GET("/:id", h.GetPet)
		pets.POST("", authMW, h.RegisterPet)
		pets.PUT("/:id/adopted", authMW, h.MarkAdopted)
	}
}

// ListAvailable handles GET /pet.
func (h *PetHandler) ListAvailable(c *gin.Context) {
	result, err := h.service.ListAvailable(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// FilterPets handles GET /pet/filter.
func (h *PetHandler) FilterPets(c *gin.Context) {
	result, err := h.service.FilterPets(
		c.Request.Context(),
		c.Query("specie"),
		c.Query("sex"),
		c.Query("size"),
	)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GetPet handles GET /pet/:id.
func (h *PetHandler) GetPet(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid pet ID")
		return
	}

	result, err := h.service.GetPet(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// RegisterPet handles POST /pet. The request is multipart form data: a
// "pet" part with the JSON attributes and up to four "images" file parts.
func (h *PetHandler) RegisterPet(c *gin.Context) {
	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	petPart := c.Request.FormValue("pet")
	if petPart == "" {
		response.BadRequest(c, "missing pet part")
		return
	}

	var req application.RegisterPetRequest
	if err := json.Unmarshal([]byte(petPart), &req); err != nil {
		response.BadRequest(c, "invalid pet payload: "+err.Error())
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		response.BadRequest(c, "invalid multipart form: "+err.Error())
		return
	}

	candidates, err := readCandidates(form.File["images"])
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.RegisterPet(c.Request.Context(), ownerID, req, candidates)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// MarkAdopted handles PUT /pet/:id/adopted.
func (h *PetHandler) MarkAdopted(c *gin.Context) {
	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	id, err := parseID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid pet ID")
		return
	}

	if err := h.service.MarkAdopted(c.Request.Context(), ownerID, id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// readCandidates drains the uploaded file parts into upload candidates,
// preserving submission order.
func readCandidates(files []*multipart.FileHeader) ([]media.UploadCandidate, error) {
	candidates := make([]media.UploadCandidate, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		content, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			return nil, err
		}

		candidates = append(candidates, media.UploadCandidate{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Content:     content,
		})
	}
	return candidates, nil
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
