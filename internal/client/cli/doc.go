// Package cli provides the interactive feedback board command-line client.
//
// App wires the session and the application services to a read-eval-print
// loop. Every command declares what it needs from the signed-in principal.
// The loop checks that before running the command. When nobody is signed in
// it starts the sign-in flow and then carries on with the command. When the
// principal lacks the role it prints an access-denied notice. Failures are
// reported inline and the loop always continues.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits or
// input ends.
package cli
