package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/An-Array/SM-Backend/internal/api/middleware"
	"github.com/An-Array/SM-Backend/internal/api/models"
	"github.com/An-Array/SM-Backend/internal/api/response"
	"github.com/An-Array/SM-Backend/internal/api/service"
)

// PostController handles the post CRUD endpoints. All of them sit behind
// RequireAuth; the owner for mutations is always the authenticated caller.
type PostController struct {
	postService service.PostService
}

// NewPostController creates a new PostController.
func NewPostController(postService service.PostService) *PostController {
	return &PostController{
		postService: postService,
	}
}

// List handles GET /posts?search=&limit=&offset=.
func (pc *PostController) List(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil {
		response.ValidationError(c, err)
		return
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil {
		response.ValidationError(c, err)
		return
	}

	posts, err := pc.postService.List(c.Request.Context(), models.PostFilter{
		Search: c.Query("search"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, posts)
}

// Get handles GET /posts/:id.
func (pc *PostController) Get(c *gin.Context) {
	id, err := postID(c)
	if err != nil {
		return
	}

	post, err := pc.postService.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// Create handles POST /posts.
func (pc *PostController) Create(c *gin.Context) {
	var req models.PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	post, err := pc.postService.Create(c.Request.Context(), middleware.CurrentUser(c), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	c.JSON(http.StatusCreated, post)
}

// Update handles PUT /posts/:id. The update is a full replacement of title,
// content and published.
func (pc *PostController) Update(c *gin.Context) {
	id, err := postID(c)
	if err != nil {
		return
	}

	var req models.PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	post, err := pc.postService.Update(c.Request.Context(), id, middleware.CurrentUser(c), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// Delete handles DELETE /posts/:id.
func (pc *PostController) Delete(c *gin.Context) {
	id, err := postID(c)
	if err != nil {
		return
	}

	if err := pc.postService.Delete(c.Request.Context(), id, middleware.CurrentUser(c)); err != nil {
		response.FromError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// postID parses the :id path parameter, writing the validation error itself
// so callers can simply return.
func postID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, err)
		return 0, err
	}
	return id, nil
}
