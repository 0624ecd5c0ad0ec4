package events

const (
	POSTS_CREATED_TOPIC    = "posts.created"
	COMMENTS_CREATED_TOPIC = "comments.created"
)
