/*
Package automation implements the command execution bridge that lets an
out-of-process controller drive the webview document.

# Overview

The package is organized around a fixed command catalog:

 1. Resolver: polls the DOM for a selector until found or timed out, so
    commands tolerate asynchronously rendered UI
 2. Simulator: synthesizes the event sequences a human-driven browser would
    produce, which is the only way reactive page state gets updated
 3. Registry: validates and dispatches named commands; no panic or error
    crosses the dispatch boundary uncaught
 4. Service: the facade tying the registry, the capability bridge and the
    capture channel behind Execute and CaptureAndSend, with an explicit
    Uninitialized/Initializing/Ready lifecycle

# Execution Model

Exactly one command executes at a time; the facade serializes callers.
Within a command, events are dispatched in fixed order (input before
change, keydown before keyup). Failures are values: every error becomes a
tagged Result, never a fault in the dispatch loop.
*/
package automation
