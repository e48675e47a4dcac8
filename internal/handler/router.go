package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Handlers bundles everything the combined server routes to.
type Handlers struct {
	Auth     *AuthHandler
	User     *UserHandler
	Group    *GroupHandler
	Message  *MessageHandler
	Post     *PostHandler
	Legal    *LegalHandler
	Snapshot *SnapshotHandler
	Chat     http.Handler // websocket session entry point
}

// NewRouter wires the combined server's routes. Paths are wire contract
// with the existing web client and must not change.
func NewRouter(h Handlers, logger zerolog.Logger) *mux.Router {
	r := mux.NewRouter()
	r.Use(Logging(logger))

	r.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("Combined server is running."))
	}).Methods(http.MethodGet)

	r.HandleFunc("/load_all_data", h.Snapshot.LoadAll).Methods(http.MethodPost)
	r.HandleFunc("/save_all_data", h.Snapshot.SaveAll).Methods(http.MethodPost)

	r.HandleFunc("/user_register", h.Auth.Register).Methods(http.MethodPost)
	r.HandleFunc("/user_login", h.Auth.Login).Methods(http.MethodPost)
	r.HandleFunc("/user_logout", h.Auth.Logout).Methods(http.MethodPost)

	r.HandleFunc("/user_friends", h.User.Friends).Methods(http.MethodPost)
	r.HandleFunc("/add_friend", h.User.AddFriend).Methods(http.MethodPost)
	r.HandleFunc("/user_state_search", h.User.StateSearch).Methods(http.MethodPost)

	r.HandleFunc("/create_group", h.Group.Create).Methods(http.MethodPost)
	r.HandleFunc("/join_group", h.Group.Join).Methods(http.MethodPost)

	r.HandleFunc("/send_personal_message", h.Message.SendPersonal).Methods(http.MethodPost)
	r.HandleFunc("/send_group_message", h.Message.SendGroup).Methods(http.MethodPost)
	r.HandleFunc("/get_personal_messages", h.Message.PersonalHistory).Methods(http.MethodPost)

	r.HandleFunc("/get_posts", h.Post.BySection).Methods(http.MethodGet)
	r.HandleFunc("/create_post", h.Post.Create).Methods(http.MethodPost)
	r.HandleFunc("/get_post_detail", h.Post.Detail).Methods(http.MethodGet)
	r.HandleFunc("/add_comment", h.Post.AddComment).Methods(http.MethodPost)

	r.HandleFunc("/search", h.Legal.Search).Methods(http.MethodPost)
	r.HandleFunc("/location", h.Legal.Location).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/api/legal", h.Legal.Advice).Methods(http.MethodPost)

	r.Handle("/ws/private", h.Chat)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	return r
}
