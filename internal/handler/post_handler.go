package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/estateline/estateline/internal/service"
)

type postReqFields struct {
	Author  string `json:"author"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Section string `json:"section"`
}

type commentReqFields struct {
	PostID  string `json:"post_id"`
	Author  string `json:"author"`
	Content string `json:"content"`
}

// PostHandler serves the forum routes.
type PostHandler struct {
	postService service.PostService
	logger      zerolog.Logger
}

func NewPostHandler(postService service.PostService, logger zerolog.Logger) *PostHandler {
	return &PostHandler{postService: postService, logger: logger}
}

func (h *PostHandler) BySection(w http.ResponseWriter, r *http.Request) {
	section := r.URL.Query().Get("section")
	if section == "" {
		writeError(w, h.logger, http.StatusBadRequest, "post query failed: missing section", r.URL.Query())
		return
	}

	posts := h.postService.BySection(section)
	writeSuccess(w, h.logger, fmt.Sprintf("%d posts in section %q", len(posts), section), map[string]any{
		"posts": posts,
	})
}

func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req postReqFields
	if err := decodeInto(r, &req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, emptyBodyMsg, nil)
		return
	}

	var missing []string
	if req.Author == "" {
		missing = append(missing, "author")
	}
	if req.Title == "" {
		missing = append(missing, "title")
	}
	if req.Content == "" {
		missing = append(missing, "content")
	}
	if req.Section == "" {
		missing = append(missing, "section")
	}
	if len(missing) > 0 {
		err := &service.ValidationError{Missing: missing}
		writeError(w, h.logger, http.StatusBadRequest, "post creation failed: "+err.Error(), req)
		return
	}

	post, err := h.postService.Create(req.Author, req.Title, req.Content, req.Section)
	if err != nil {
		writeError(w, h.logger, statusFor(err), "post creation failed: "+err.Error(), req)
		return
	}

	writeSuccess(w, h.logger, fmt.Sprintf("post %q created (id %d)", req.Title, post.ID), map[string]any{
		"post": post,
	})
}

func (h *PostHandler) Detail(w http.ResponseWriter, r *http.Request) {
	idText := r.URL.Query().Get("post_id")
	if idText == "" {
		writeError(w, h.logger, http.StatusBadRequest, "post detail failed: missing post_id", r.URL.Query())
		return
	}
	id, err := strconv.Atoi(idText)
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, fmt.Sprintf("post detail failed: %q is not a valid id", idText), r.URL.Query())
		return
	}

	post, err := h.postService.Get(id)
	if err != nil {
		writeError(w, h.logger, statusFor(err), "post detail failed: "+err.Error(), r.URL.Query())
		return
	}

	writeSuccess(w, h.logger, fmt.Sprintf("post %d", id), map[string]any{
		"post": post,
	})
}

func (h *PostHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	var req commentReqFields
	if err := decodeInto(r, &req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, emptyBodyMsg, nil)
		return
	}

	var missing []string
	if req.PostID == "" {
		missing = append(missing, "post_id")
	}
	if req.Author == "" {
		missing = append(missing, "author")
	}
	if req.Content == "" {
		missing = append(missing, "content")
	}
	if len(missing) > 0 {
		err := &service.ValidationError{Missing: missing}
		writeError(w, h.logger, http.StatusBadRequest, "adding comment failed: "+err.Error(), req)
		return
	}

	id, err := strconv.Atoi(req.PostID)
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, fmt.Sprintf("adding comment failed: %q is not a valid id", req.PostID), req)
		return
	}

	comment, err := h.postService.AddComment(id, req.Author, req.Content)
	if err != nil {
		writeError(w, h.logger, statusFor(err), "adding comment failed: "+err.Error(), req)
		return
	}

	writeSuccess(w, h.logger, fmt.Sprintf("comment added to post %d by %q", id, req.Author), map[string]any{
		"comment": comment,
	})
}
