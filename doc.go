// Package bind provides declarative registration of gorilla/mux routes that
// share request-lifecycle middleware.
//
// It exists for the case where only some of the routes on a router should
// use a piece of middleware - routes that sit behind a login, say.  Wrapping
// each of those handlers by hand is repetitive, so a Binding declares the
// routes and the middleware once, and Apply expands the declaration into the
// individual registration calls:
//
//	router := mux.NewRouter()
//	binder := bind.NewBinder(container, logger, bind.DefaultConfig())
//
//	err := binder.Apply(bind.Binding{
//		Router: router,
//		Routes: []bind.Route{
//			bind.Get("profile", "/profile", showProfile),
//			bind.Post("profile_update", "/profile", updateProfile),
//			bind.Delete("session", "/session", endSession),
//		},
//		Middleware: []bind.Link{
//			bind.Before(&RequireSession{}),
//			bind.After(&AuditTrail{}),
//		},
//	})
//
// Routes that don't need the middleware are registered on the router as
// usual and are unaffected by the binding:
//
//	router.Handle("/about", aboutHandler).Methods(http.MethodGet)
//
// Every route in a binding is registered exactly once, is named on the
// router for reverse lookup, and is served through the chain
// before-middleware, handler, after-middleware.  The routing table itself -
// path matching, method matching, and dispatch - remains entirely the
// router's concern.
package bind
