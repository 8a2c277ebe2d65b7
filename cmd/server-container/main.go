package main

import (
	"context"

	"github.com/ShahinyanDav/chessnaptracker/app"
	"github.com/ShahinyanDav/chessnaptracker/app/config"
	"github.com/ShahinyanDav/chessnaptracker/pkg/logger"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
)

var ginLambda *ginadapter.GinLambda

// init runs once per Lambda container (cold start)
func init() {
	log := logger.New("lambda")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalw("failed to load config", "error", err)
	}

	router := app.NewRouter(app.NewHandler(cfg))
	ginLambda = ginadapter.New(router)
}

// Handler is the Lambda entrypoint for API Gateway REST/HTTP API (proxy integration)
func Handler(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return ginLambda.ProxyWithContext(ctx, req)
}

func main() {
	lambda.Start(Handler)
}
