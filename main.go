package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"time"

	"github.com/apex/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

var addr = flag.String("addr", ":8080", "address the HTTP server listens on")

var sigint chan os.Signal

func waitShutdown(e *echo.Echo, idleConnsClosed chan<- interface{}) {
	defer close(idleConnsClosed)

	sigint = make(chan os.Signal, 1)
	signal.Notify(sigint, os.Interrupt)
	defer signal.Stop(sigint)

	<-sigint
	log.Info("received shutdown signal")

	idleError("HTTP server shutdown:", e.Shutdown(context.Background()))
}

func listenAndServe(srv *server, addr string, idleConnsClosed chan<- interface{}) {
	e := apiHandler(srv)
	go waitShutdown(e, idleConnsClosed)

	e.Use(middleware.Logger())

	idleError("HTTP server end:", e.Start(addr))
}

// Open serves the API on addr until interrupted.
func Open(srv *server, addr string) {
	idleConnsClosed := make(chan interface{})
	go listenAndServe(srv, addr, idleConnsClosed)
	<-idleConnsClosed
}

func idle(srv *server) {
	idleError("game idle complete:", srv.gameIdle())
	time.Sleep(time.Minute)
}

func main() {
	flag.Parse()
	database, err := openDB()
	if err != nil {
		log.WithError(err).Fatal("open database")
	}
	defer func() {
		idleError("close server:", closeDB(database))
	}()
	srv := newServer(gormStore{db: database})
	go func() {
		for {
			idle(srv)
		}
	}()
	Open(srv, *addr)
}
