package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/account-service/internal/api/metrics"
	"github.com/99minutos/account-service/internal/core/ports"
)

// AdminHandler serves the administrator-only account and post routes. The
// router mounts it behind RequireRole(admin); the services check again.
type AdminHandler struct {
	accounts ports.AccountService
	posts    ports.PostService
}

func NewAdminHandler(accounts ports.AccountService, posts ports.PostService) *AdminHandler {
	return &AdminHandler{accounts: accounts, posts: posts}
}

// Deactivate soft-deletes an account.
//
// @Summary      Deactivate an account
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      userIDRequest  true  "Target account"
// @Success      200   {object}  dataResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Router       /admin/user_delete [delete]
func (h *AdminHandler) Deactivate(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req userIDRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	acct, err := h.accounts.Deactivate(c.Request().Context(), p, req.UserID)
	if err != nil {
		return err
	}
	metrics.LifecycleTransitionsTotal.WithLabelValues(ports.AuditDeactivate).Inc()
	return c.JSON(http.StatusOK, dataResponse{Message: "User deleted successfully", Data: acct.Public()})
}

// Restore undoes a soft delete.
//
// @Summary      Restore an account
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      userIDRequest  true  "Target account"
// @Success      200   {object}  dataResponse
// @Failure      404   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Router       /admin/user_undo_delete [put]
func (h *AdminHandler) Restore(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req userIDRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	acct, err := h.accounts.Restore(c.Request().Context(), p, req.UserID)
	if err != nil {
		return err
	}
	metrics.LifecycleTransitionsTotal.WithLabelValues(ports.AuditRestore).Inc()
	return c.JSON(http.StatusOK, dataResponse{Message: "User restored successfully", Data: acct.Public()})
}

// Purge hard-deletes a deactivated account and its posts.
//
// @Summary      Purge a deactivated account
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path  int  true  "Account id"
// @Success      204
// @Failure      403  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /admin/users/{userId} [delete]
func (h *AdminHandler) Purge(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "userId")
	if err != nil {
		return err
	}

	if err := h.accounts.Purge(c.Request().Context(), p, id); err != nil {
		return err
	}
	metrics.LifecycleTransitionsTotal.WithLabelValues(ports.AuditPurge).Inc()
	return c.NoContent(http.StatusNoContent)
}

// ListPosts returns every post with its owner.
//
// @Summary      List all posts
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dataResponse
// @Router       /admin/posts [get]
func (h *AdminHandler) ListPosts(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	posts, err := h.posts.ListAll(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Message: "All posts fetched", Data: toAdminPostList(posts)})
}

// ListUserPosts returns the posts of one account.
//
// @Summary      List an account's posts
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path  int  true  "Account id"
// @Success      200  {object}  dataResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/users/{userId}/posts [get]
func (h *AdminHandler) ListUserPosts(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "userId")
	if err != nil {
		return err
	}
	posts, err := h.posts.ListByOwner(c.Request().Context(), p, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Message: "User posts fetched", Data: toPostList(posts)})
}

// UpdateUserPost rewrites a post of the given account.
//
// @Summary      Update an account's post
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path  int          true  "Account id"
// @Param        postId  path  int          true  "Post id"
// @Param        body    body  postRequest  true  "Post"
// @Success      200  {object}  dataResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/users/{userId}/posts/{postId} [put]
func (h *AdminHandler) UpdateUserPost(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	ref, err := scopedPostRef(c)
	if err != nil {
		return err
	}
	var req postRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.posts.Update(c.Request().Context(), p, ref, ports.PostInput{Title: req.Title, Content: req.Content})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Message: "Post updated", Data: toOwnedPost(post)})
}

// DeleteUserPost removes a post of the given account.
//
// @Summary      Delete an account's post
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path  int  true  "Account id"
// @Param        postId  path  int  true  "Post id"
// @Success      200  {object}  dataResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/users/{userId}/posts/{postId} [delete]
func (h *AdminHandler) DeleteUserPost(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	ref, err := scopedPostRef(c)
	if err != nil {
		return err
	}

	post, err := h.posts.Delete(c.Request().Context(), p, ref)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Message: "Post deleted", Data: toOwnedPost(post)})
}

func scopedPostRef(c echo.Context) (ports.PostRef, error) {
	ownerID, err := idParam(c, "userId")
	if err != nil {
		return ports.PostRef{}, err
	}
	postID, err := idParam(c, "postId")
	if err != nil {
		return ports.PostRef{}, err
	}
	return ports.PostRef{PostID: postID, OwnerID: ownerID}, nil
}
