package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"roomnest/internal/auth"
	"roomnest/internal/errors"
	"roomnest/internal/service"
	"roomnest/internal/storage"
)

const maxRoomPhotos = 3

// RoomHandler handles listing endpoints.
type RoomHandler struct {
	roomService service.RoomService
	photos      storage.PhotoStore
}

// NewRoomHandler creates a new room handler.
func NewRoomHandler(roomService service.RoomService, photos storage.PhotoStore) *RoomHandler {
	return &RoomHandler{roomService: roomService, photos: photos}
}

// RoomRequest represents the JSON body for creating or updating a room.
// OwnerID and booked state are deliberately absent: they cannot be set by a
// request body.
type RoomRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Rent        string   `json:"rent"`
	Location    string   `json:"location"`
	Facilities  []string `json:"facilities"`
	Photos      []string `json:"photos"`
	Mobile      string   `json:"mobile"`
	Name        string   `json:"name"`
}

// CreateRoomRequest adds the fields required on creation.
type CreateRoomRequest struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Rent        string   `json:"rent" validate:"required"`
	Location    string   `json:"location" validate:"required"`
	Facilities  []string `json:"facilities"`
	Photos      []string `json:"photos" validate:"required,min=1"`
	Mobile      string   `json:"mobile"`
	Name        string   `json:"name"`
}

func (r *CreateRoomRequest) toInput() (service.RoomInput, error) {
	rent, err := decimal.NewFromString(r.Rent)
	if err != nil {
		return service.RoomInput{}, err
	}
	return service.RoomInput{
		Title:       r.Title,
		Description: r.Description,
		Rent:        rent,
		Location:    r.Location,
		Facilities:  r.Facilities,
		Photos:      r.Photos,
		Mobile:      r.Mobile,
		Name:        r.Name,
	}, nil
}

// CreateRoom godoc
// @Summary Create a listing from JSON (photo URLs already uploaded)
// @Tags rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateRoomRequest true "Room data"
// @Success 201 {object} model.Room
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /rooms [post]
func (h *RoomHandler) CreateRoom(c echo.Context) error {
	identity := auth.IdentityFrom(c)

	var req CreateRoomRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	input, err := req.toInput()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid rent",
			Code:  "INVALID_AMOUNT",
		})
	}

	room, err := h.roomService.CreateRoom(c.Request().Context(), identity.ID, input)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, room)
}

// UploadRoom godoc
// @Summary Create a listing from a multipart form with photo files
// @Tags rooms
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Title"
// @Param description formData string false "Description"
// @Param rent formData string true "Monthly rent"
// @Param location formData string false "Location"
// @Param facilities formData string false "JSON array of facilities"
// @Param mobile formData string false "Owner contact mobile"
// @Param name formData string false "Owner contact name"
// @Param photos formData file true "Room photos (max 3, 5MB each)"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /rooms/upload [post]
func (h *RoomHandler) UploadRoom(c echo.Context) error {
	identity := auth.IdentityFrom(c)

	form, err := c.MultipartForm()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid multipart form")
	}

	files := form.File["photos"]
	if len(files) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "no files uploaded",
			Code:  "NO_FILES",
		})
	}
	if len(files) > maxRoomPhotos {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: fmt.Sprintf("too many files uploaded, maximum is %d", maxRoomPhotos),
			Code:  "TOO_MANY_FILES",
		})
	}

	photoURLs := make([]string, 0, len(files))
	for _, file := range files {
		url, err := h.uploadPhoto(c, file)
		if err != nil {
			return err
		}
		photoURLs = append(photoURLs, url)
	}

	rent, err := decimal.NewFromString(c.FormValue("rent"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid rent",
			Code:  "INVALID_AMOUNT",
		})
	}

	input := service.RoomInput{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Rent:        rent,
		Location:    c.FormValue("location"),
		Facilities:  parseFacilities(c.FormValue("facilities")),
		Photos:      photoURLs,
		Mobile:      c.FormValue("mobile"),
		Name:        c.FormValue("name"),
	}

	room, err := h.roomService.CreateRoom(c.Request().Context(), identity.ID, input)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "room uploaded successfully",
		"room":    room,
	})
}

func (h *RoomHandler) uploadPhoto(c echo.Context, file *multipart.FileHeader) (string, error) {
	if file.Size > maxPhotoSize {
		return "", echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "file size exceeds the 5MB limit",
			Code:  "FILE_TOO_LARGE",
		})
	}
	contentType := file.Header.Get("Content-Type")
	if !allowedPhotoTypes[contentType] {
		return "", echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "only JPEG, PNG, and GIF images are allowed",
			Code:  "INVALID_FILE_TYPE",
		})
	}

	src, err := file.Open()
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, "unreadable photo upload")
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, "unreadable photo upload")
	}

	key := fmt.Sprintf("rooms/%d-%s", time.Now().UnixNano(), file.Filename)
	url, err := h.photos.Upload(c.Request().Context(), key, data, contentType)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return "", echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return url, nil
}

// parseFacilities decodes the JSON-encoded facilities form value, falling back
// to an empty list on malformed input.
func parseFacilities(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var facilities []string
	if err := json.Unmarshal([]byte(raw), &facilities); err != nil {
		return []string{}
	}
	return facilities
}

// ListRooms godoc
// @Summary List all rooms with owner contact details
// @Tags rooms
// @Produce json
// @Success 200 {array} service.RoomView
// @Failure 500 {object} errors.ErrorResponse
// @Router /rooms [get]
func (h *RoomHandler) ListRooms(c echo.Context) error {
	rooms, err := h.roomService.ListRooms(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, rooms)
}

// GetRoom godoc
// @Summary Get a room by ID
// @Tags rooms
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} service.RoomView
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /rooms/{id} [get]
func (h *RoomHandler) GetRoom(c echo.Context) error {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid room id",
			Code:  "INVALID_UUID",
		})
	}

	room, err := h.roomService.GetRoom(c.Request().Context(), roomID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, room)
}

// UpdateRoom godoc
// @Summary Update a room's allow-listed fields
// @Tags rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Room ID"
// @Param request body RoomRequest true "Fields to update"
// @Success 200 {object} model.Room
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /rooms/{id} [put]
func (h *RoomHandler) UpdateRoom(c echo.Context) error {
	identity := auth.IdentityFrom(c)

	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid room id",
			Code:  "INVALID_UUID",
		})
	}

	var req RoomRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	input := service.RoomInput{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Facilities:  req.Facilities,
		Photos:      req.Photos,
		Mobile:      req.Mobile,
		Name:        req.Name,
	}
	if req.Rent != "" {
		rent, err := decimal.NewFromString(req.Rent)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: "invalid rent",
				Code:  "INVALID_AMOUNT",
			})
		}
		input.Rent = rent
	}

	room, err := h.roomService.UpdateRoom(c.Request().Context(), roomID, identity.ID, input)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, room)
}

// DeleteRoom godoc
// @Summary Delete a room
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param id path string true "Room ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /rooms/{id} [delete]
func (h *RoomHandler) DeleteRoom(c echo.Context) error {
	identity := auth.IdentityFrom(c)

	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid room id",
			Code:  "INVALID_UUID",
		})
	}

	if err := h.roomService.DeleteRoom(c.Request().Context(), roomID, identity.ID); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "room deleted",
	})
}
