package api

import (
	"context"
	"fmt"
	"os"

	"github.com/Ham3798/solana-voting-sample/api/controllers"
	"github.com/Ham3798/solana-voting-sample/api/transport"
	"github.com/Ham3798/solana-voting-sample/logging"
	"github.com/Ham3798/solana-voting-sample/storage"
	"github.com/Ham3798/solana-voting-sample/voting"
	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"
)

type Server struct {
	config *Config
}

func NewServer(config *Config) *Server {
	return &Server{
		config: config,
	}
}

func (s *Server) Start() {
	r := transport.NewRouter(gin.DebugMode)

	polls, candidates, votes := s.buildStorage()

	ledger := voting.NewLedger(polls, candidates, votes, voting.Config{
		AllowPollOverwrite:     s.config.AllowPollOverwrite,
		AcceptUnknownCandidate: s.config.AcceptUnknownCandidate,
	})

	//Register controllers
	pollsController := controllers.NewPollsController(ledger)
	pollsController.RegisterRoutes(r)
	candidatesController := controllers.NewCandidatesController(ledger)
	candidatesController.RegisterRoutes(r)
	votesController := controllers.NewVotesController(ledger)
	votesController.RegisterRoutes(r)
	adminController := controllers.NewAdminController(polls, candidates, votes, s.config.AllowReset)
	adminController.RegisterRoutes(r)

	//Do not run lambda helper locally
	if os.Getenv("APP_ENV") == "local" {
		startLocal(r, s.config.Port)
	} else {
		startLambda(r)
	}
}

// buildStorage picks the registry backend from configuration.
// Dynamo is the deployed default, postgres and memory cover
// self-hosted and local development setups.
func (s *Server) buildStorage() (storage.PollStorage, storage.CandidateStorage, storage.VoteRecordStorage) {
	switch s.config.Driver {
	case "memory":
		logging.Log.Info("Using in-memory storage")
		return storage.NewMemoryPollStorage(), storage.NewMemoryCandidateStorage(), storage.NewMemoryVoteRecordStorage()

	case "postgres":
		logging.Log.Info("Using postgres storage")
		db, err := storage.OpenPostgres(s.config.PostgresDSN)
		if err != nil {
			logging.Log.Errorf("failed to open postgres: %v", err)
			panic("failed to open postgres")
		}
		return &storage.PostgresPollStorage{DB: db},
			&storage.PostgresCandidateStorage{DB: db},
			&storage.PostgresVoteRecordStorage{DB: db}

	default:
		logging.Log.Info("Using dynamo storage")
		cfg, err := awsconfig.LoadDefaultConfig(context.Background())
		if err != nil {
			logging.Log.Errorf("failed to load AWS config: %v", err)
			panic("failed to load AWS config")
		}

		dynamoClient := dynamodb.NewFromConfig(cfg)
		return &storage.DynamoPollStorage{Client: dynamoClient, TableName: s.config.TableNamePolls},
			&storage.DynamoCandidateStorage{Client: dynamoClient, TableName: s.config.TableNameCandidates},
			&storage.DynamoVoteRecordStorage{Client: dynamoClient, TableName: s.config.TableNameVotes}
	}
}

// StartLambda sets up for AWS Lambda
func startLambda(engine *gin.Engine) {
	ginLambda := ginadapter.NewV2(engine)

	handler := func(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
		logging.Log.Infof("Lambda handler triggered on path: %s", req.RawPath)
		return ginLambda.ProxyWithContext(ctx, req)
	}

	logging.Log.Info("Starting lambda")
	lambda.Start(handler)
}

// StartLocal starts a normal HTTP server on port 8080
func startLocal(engine *gin.Engine, port int) {
	logging.Log.Info(fmt.Sprintf("Starting server on http://localhost:%d", port))

	if err := engine.Run(fmt.Sprintf(":%d", port)); err != nil {
		logging.Log.Fatalf("Failed to run server: %v", err)
	}
}
