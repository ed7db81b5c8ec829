package main

import (
	"context"

	"gateway-demo-api/internal/config"
	"gateway-demo-api/pkg/gateway"
	"gateway-demo-api/pkg/server"

	"github.com/aws/aws-lambda-go/events"
	awslambda "github.com/aws/aws-lambda-go/lambda"
)

var container *server.Container

func init() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	container, err = server.NewContainer(cfg)
	if err != nil {
		panic("Failed to initialize container: " + err.Error())
	}
}

func handler(ctx context.Context, event gateway.Event) (events.APIGatewayProxyResponse, error) {
	return container.Greeter.Handle(ctx, &event)
}

func main() {
	awslambda.Start(handler)
}
