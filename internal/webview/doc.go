/*
Package webview hosts the in-process execution context that automation
commands run against.

# Overview

The package models the document environment of the application's webview as
a headless DOM driven entirely from Go:

  - Document: HTML tree (golang.org/x/net/html) with CSS selector queries
    (goquery), mutable element state, focus tracking and a route table for
    navigation
  - Events: per-node listener tables with bubbling dispatch, so page scripts
    observe programmatic mutations exactly like user input
  - Runtime: goja VM exposing document/window bindings for arbitrary script
    evaluation and for pages that register reactive event listeners
  - Host: named host-function bindings, the surface the capability bridge
    probes to reach the owning native process
  - Render: deterministic block-layout rasterization of the document to PNG
    for the screenshot capture flow

# Element State

Live property state (value, checked) is kept in overlays on the Document,
separate from parsed attributes, mirroring how browsers distinguish the
value property from the value attribute. Navigation resets all overlays,
listeners and focus.

# Concurrency

The document is driven by one command at a time; the automation facade
serializes access. Only the host binding table is safe for concurrent use,
since the native side may install bindings while the page runs.
*/
package webview
