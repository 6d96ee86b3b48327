//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"
	"teamboard/internal/app"
	"teamboard/internal/config"
	"teamboard/internal/http"
	"teamboard/internal/http/controller"
	"teamboard/internal/http/middleware"
	"teamboard/internal/logging"
	"teamboard/internal/push"
	"teamboard/internal/queue/rabbitmq"
	"teamboard/internal/repository"
	"teamboard/internal/service/admin"
	"teamboard/internal/service/broadcast"
	"teamboard/internal/service/journal"
	"teamboard/internal/service/notify"
	"teamboard/internal/service/recipients"
	"teamboard/internal/sse"
	"teamboard/internal/store"
)

var storeSet = wire.NewSet(
	store.NewStore,
	wire.Bind(new(repository.NotificationRepository), new(repository.Store)),
	wire.Bind(new(repository.JournalRepository), new(repository.Store)),
	wire.Bind(new(repository.RecipientRepository), new(repository.Store)),
	wire.Bind(new(repository.AdminRepository), new(repository.Store)),
	wire.Bind(new(broadcast.Inserter), new(repository.Store)),
)

var serviceSet = wire.NewSet(
	recipients.NewStoreResolver,
	wire.Bind(new(broadcast.Resolver), new(*recipients.Resolver)),
	app.NewPushChain,
	wire.Bind(new(broadcast.Pusher), new(*push.Chain)),
	broadcast.NewConfiguredWriter,
	broadcast.NewConfiguredService,
	notify.NewService,
	journal.NewService,
	admin.NewDashboard,
	admin.NewAuthorizer,
	wire.Bind(new(middleware.Authorizer), new(*admin.Authorizer)),
)

func InitializeApp() (*app.App, func(), error) {
	wire.Build(
		config.New,
		logging.New,
		storeSet,
		sse.NewHub,
		serviceSet,
		controller.NewValidator,
		controller.NewHandler,
		http.NewRouter,
		rabbitmq.NewConsumer,
		rabbitmq.NewPublisher,
		app.NewApp,
	)
	return nil, nil, nil
}
