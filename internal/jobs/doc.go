// Package jobs contains background jobs for the Haven API.
//
// Jobs run on an interval in their own goroutine and stop cleanly on
// shutdown. The invite sweeper removes invites left dangling after
// their server or channel is deleted.
package jobs
