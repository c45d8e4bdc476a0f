package redis

import "strconv"

const (
	// KeyPrefixBookmark is the prefix for bookmark keys
	KeyPrefixBookmark = "bookmarks:bookmark:"
	// KeyBookmarkIDs is the sorted set of all bookmark IDs, scored by ID
	KeyBookmarkIDs = "bookmarks:ids"
	// KeyBookmarkSeq is the counter handing out bookmark IDs
	KeyBookmarkSeq = "bookmarks:seq"
)

// BookmarkKey returns the Redis key for a bookmark by ID
func BookmarkKey(id int64) string {
	return KeyPrefixBookmark + strconv.FormatInt(id, 10)
}
