package handler

import (
	"context"
	"net/http"
	"time"

	config "baul-moda/config/database"

	"github.com/labstack/echo/v4"
)

// TipRequest is the create/update payload for tips.
type TipRequest struct {
	Title    string `json:"title" validate:"required"`
	Body     string `json:"body"`
	ImageURL string `json:"image_url"`
}

// CourseRequest is the create/update payload for courses.
type CourseRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description"`
	PriceARS    float64 `json:"price_ars"`
	SignupURL   string  `json:"signup_url"`
}

// ProjectRequest is the create/update payload for projects.
type ProjectRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

// CreateTip handles POST /admin/tips
func CreateTip(c echo.Context) error {
	var req TipRequest
	if err := c.Bind(&req); err != nil || req.Title == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var tipID string
	query := "INSERT INTO tips (title, body, image_url) VALUES ($1, $2, $3) RETURNING id"
	if err := config.Pool.QueryRow(ctx, query, req.Title, req.Body, req.ImageURL).Scan(&tipID); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to create tip"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"message": "Tip created successfully", "id": tipID})
}

// UpdateTip handles PUT /admin/tips/:id
func UpdateTip(c echo.Context) error {
	var req TipRequest
	if err := c.Bind(&req); err != nil || req.Title == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	query := "UPDATE tips SET title = $1, body = $2, image_url = $3, updated_at = NOW() WHERE id = $4"
	tag, err := config.Pool.Exec(ctx, query, req.Title, req.Body, req.ImageURL, c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to update tip"})
	}
	if tag.RowsAffected() == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"message": "Tip not found"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Tip updated successfully"})
}

// DeleteTip handles DELETE /admin/tips/:id
func DeleteTip(c echo.Context) error {
	return deleteByID(c, "tips", "Tip")
}

// CreateCourse handles POST /admin/courses
func CreateCourse(c echo.Context) error {
	var req CourseRequest
	if err := c.Bind(&req); err != nil || req.Title == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request"})
	}
	if req.PriceARS < 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Price cannot be negative"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var courseID string
	query := "INSERT INTO courses (title, description, price_ars, signup_url) VALUES ($1, $2, $3, $4) RETURNING id"
	if err := config.Pool.QueryRow(ctx, query, req.Title, req.Description, req.PriceARS, req.SignupURL).Scan(&courseID); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to create course"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"message": "Course created successfully", "id": courseID})
}

// UpdateCourse handles PUT /admin/courses/:id
func UpdateCourse(c echo.Context) error {
	var req CourseRequest
	if err := c.Bind(&req); err != nil || req.Title == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	query := "UPDATE courses SET title = $1, description = $2, price_ars = $3, signup_url = $4, updated_at = NOW() WHERE id = $5"
	tag, err := config.Pool.Exec(ctx, query, req.Title, req.Description, req.PriceARS, req.SignupURL, c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to update course"})
	}
	if tag.RowsAffected() == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"message": "Course not found"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Course updated successfully"})
}

// DeleteCourse handles DELETE /admin/courses/:id
func DeleteCourse(c echo.Context) error {
	return deleteByID(c, "courses", "Course")
}

// CreateProject handles POST /admin/projects
func CreateProject(c echo.Context) error {
	var req ProjectRequest
	if err := c.Bind(&req); err != nil || req.Title == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var projectID string
	query := "INSERT INTO projects (title, description, image_url) VALUES ($1, $2, $3) RETURNING id"
	if err := config.Pool.QueryRow(ctx, query, req.Title, req.Description, req.ImageURL).Scan(&projectID); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to create project"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"message": "Project created successfully", "id": projectID})
}

// UpdateProject handles PUT /admin/projects/:id
func UpdateProject(c echo.Context) error {
	var req ProjectRequest
	if err := c.Bind(&req); err != nil || req.Title == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	query := "UPDATE projects SET title = $1, description = $2, image_url = $3, updated_at = NOW() WHERE id = $4"
	tag, err := config.Pool.Exec(ctx, query, req.Title, req.Description, req.ImageURL, c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to update project"})
	}
	if tag.RowsAffected() == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"message": "Project not found"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Project updated successfully"})
}

// DeleteProject handles DELETE /admin/projects/:id
func DeleteProject(c echo.Context) error {
	return deleteByID(c, "projects", "Project")
}

func deleteByID(c echo.Context, table, label string) error {
	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": label + " ID is required"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	tag, err := config.Pool.Exec(ctx, "DELETE FROM "+table+" WHERE id = $1", id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to delete " + table})
	}
	if tag.RowsAffected() == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"message": label + " not found"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": label + " deleted successfully"})
}
