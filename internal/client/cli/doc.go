// Package cli is the interactive terminal client for the profile API.
//
// It wires configuration, local token storage, the API client and the
// screens (login, profile) behind a small REPL. On start a stored session
// token is used to restore the signed-in user, and a background watcher
// keeps the online/offline indicator in the prompt current.
//
// Commands
//
//	help                   show available commands
//	register               create an account
//	login                  sign in and open the profile screen
//	logout                 forget the session and return to login
//	profile                open the profile screen
//	set <field> [value]    change one form field (passwords are prompted)
//	edit                   prompt for every form field
//	prefill                copy the signed-in user into the form
//	show                   print the profile screen
//	submit                 send the form to the API
//	whoami                 print the signed-in user
//	exit | quit            leave the program
package cli
