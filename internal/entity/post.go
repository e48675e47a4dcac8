package entity

import "time"

// Post is a forum post inside a named section.
type Post struct {
	ID       int        `json:"id"`
	Author   string     `json:"author"`
	Title    string     `json:"title"`
	Content  string     `json:"content"`
	Section  string     `json:"section"`
	Time     string     `json:"time"`
	Comments []*Comment `json:"comments"`
}

// Comment is a reply attached to a post.
type Comment struct {
	ID      int    `json:"id"`
	PostID  int    `json:"post_id"`
	Author  string `json:"author"`
	Content string `json:"content"`
	Time    string `json:"time"`
}

// PostTimeLayout is the display format used for post and comment times.
const PostTimeLayout = "2006-01-02 15:04:05"

func NewPost(id int, author, title, content, section string) *Post {
	return &Post{
		ID:      id,
		Author:  author,
		Title:   title,
		Content: content,
		Section: section,
		Time:    time.Now().Format(PostTimeLayout),
	}
}

func NewComment(id, postID int, author, content string) *Comment {
	return &Comment{
		ID:      id,
		PostID:  postID,
		Author:  author,
		Content: content,
		Time:    time.Now().Format(PostTimeLayout),
	}
}
