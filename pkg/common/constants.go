package common

const (
	// System config keys recognized by the pipeline.
	ConfigKeyNewsFetchLimit = "news_fetch_limit"

	// DefaultNewsFetchLimit bounds how many items are kept per platform per
	// batch when news_fetch_limit is absent or unparsable.
	DefaultNewsFetchLimit = 20

	// Redis key patterns.
	RedisKeyRefreshLock = "news:refresh:lock:%s:%s" // platform id, fetched date
	RedisKeyHotFeed     = "news:feed:hot:%d"        // limit
)
