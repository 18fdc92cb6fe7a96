// Package domain defines the entities exchanged with the feedback board API:
// principals and their roles, boards and members, feedback items, comments and
// replies, plus the local validation rules applied before anything is sent.
package domain
