package redisrepo

import "fmt"

const (
	FEED_KEY_PREFIX = "feed:"
	FEED_PAGE_KEY   = FEED_KEY_PREFIX + "%s:%d:%d" // <feed name>:<page>:<page size>
	FEED_KEYS_MATCH = FEED_KEY_PREFIX + "*"
)

func FeedPageKey(feed string, page int, pageSize int) string {
	return fmt.Sprintf(FEED_PAGE_KEY, feed, page, pageSize)
}
