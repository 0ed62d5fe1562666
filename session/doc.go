// Package session holds the pause/resume state of a relay task.
//
// A Session moves Idle → Active on Start, Active → Paused on Pause and
// Paused → Active on Resume. Start from any state begins a fresh task with an
// empty buffer; an empty task id is rejected. Sessions are owned values;
// create one per task runner.
package session
