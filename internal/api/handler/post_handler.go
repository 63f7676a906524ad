package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/account-service/internal/core/ports"
)

// PostHandler serves post routes for any authenticated caller.
type PostHandler struct {
	service ports.PostService
}

func NewPostHandler(service ports.PostService) *PostHandler {
	return &PostHandler{service: service}
}

// Create adds a post owned by the caller.
//
// @Summary      Create a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      postRequest  true  "Post"
// @Success      201   {object}  dataResponse
// @Failure      422   {object}  ErrorResponse
// @Router       /posts/add [post]
func (h *PostHandler) Create(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req postRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.service.Create(c.Request().Context(), p, ports.PostInput{Title: req.Title, Content: req.Content})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, dataResponse{Message: "Post created successfully", Data: toPostResponse(post)})
}

// Get returns a single post. No authentication is required.
//
// @Summary      Get a post
// @Tags         posts
// @Produce      json
// @Param        postId  path  int  true  "Post id"
// @Success      200  {object}  dataResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /post/get/{postId} [get]
func (h *PostHandler) Get(c echo.Context) error {
	id, err := idParam(c, "postId")
	if err != nil {
		return err
	}
	post, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Message: "Post fetched successfully", Data: toPostResponse(post)})
}

// Update rewrites a post the caller owns.
//
// @Summary      Update a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        postId  path  int          true  "Post id"
// @Param        body    body  postRequest  true  "Post"
// @Success      200  {object}  dataResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /posts/update/{postId} [put]
func (h *PostHandler) Update(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "postId")
	if err != nil {
		return err
	}
	var req postRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.service.Update(c.Request().Context(), p, ports.PostRef{PostID: id}, ports.PostInput{Title: req.Title, Content: req.Content})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Message: "Post updated successfully", Data: toPostResponse(post)})
}

// Delete removes a post the caller owns.
//
// @Summary      Delete a post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        postId  path  int  true  "Post id"
// @Success      200  {object}  dataResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /post/delete/singlepost/{postId} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "postId")
	if err != nil {
		return err
	}

	post, err := h.service.Delete(c.Request().Context(), p, ports.PostRef{PostID: id})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Message: "Post deleted successfully", Data: toPostResponse(post)})
}

// DeleteAll removes every post of the caller.
//
// @Summary      Delete all own posts
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dataResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /posts/delete_all [delete]
func (h *PostHandler) DeleteAll(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	n, err := h.service.DeleteMine(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Message: "All posts deleted for user", Data: deletedCountResponse{DeletedCount: n}})
}

// List returns the caller's posts. Admins may pass ?userId= to list another account.
//
// @Summary      List posts
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        userId  query  int  false  "Account id (admin only)"
// @Success      200  {object}  dataResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/posts [get]
func (h *PostHandler) List(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	var ownerID int64
	if raw := c.QueryParam("userId"); raw != "" {
		ownerID, err = strconv.ParseInt(raw, 10, 64)
		if err != nil || ownerID <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "userId must be a positive integer")
		}
	}

	posts, err := h.service.ListByOwner(c.Request().Context(), p, ownerID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Message: "All Posts fetched successfully", Data: toPostList(posts)})
}
