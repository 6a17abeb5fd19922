// Package logtail reads the end of the perch log file for the in-app log
// view.
//
// Read keeps a ring buffer of maxLines entries while scanning the file once,
// so memory stays proportional to the lines returned rather than the file
// size:
//
//	lines, err := logtail.Read(cfg.LogPath(), 400)
//
// A missing file returns nil, nil since perch may not have logged anything
// yet. Level pulls the slog level out of a text or JSON record so the UI can
// color it.
package logtail
