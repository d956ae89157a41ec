// Package message implements posting, editing and deleting messages.
//
// A message is created active, may have its text replaced any number of
// times, and is removed by Delete. Only the text is mutable; posted_by and
// time_posted_epoch are fixed at creation.
package message
