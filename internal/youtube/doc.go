// Package youtube resolves video identifiers, runs yt-dlp for video info and
// fetches captions and thumbnails over HTTP.
//
// yt-dlp is only asked for the info JSON; every download (captions, sprite
// fragments, thumbnails) goes through Fetcher so timeouts, user agent and
// cancellation are handled in one place.
package youtube
