package container

import (
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-clinic-api/config"
	"github.com/oksasatya/go-clinic-api/pkg/helpers"
)

// Process-wide singletons built by cmd/main.go; router.DepsFromContainer reads them.
// Optional infrastructure (Redis, RabbitMQ, Elasticsearch) stays nil.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	redisClient *redis.Client
	jwtManager  *helpers.JWTManager
	rabbitPub   *helpers.RabbitPublisher
	esClient    *elasticsearch.Client
)

func SetConfig(c *config.Config) { cfg = c }

func GetConfig() *config.Config { return cfg }

func SetLogger(l *logrus.Logger) { logger = l }

func GetLogger() *logrus.Logger { return logger }

func SetRedis(r *redis.Client) { redisClient = r }

func GetRedis() *redis.Client { return redisClient }

func SetJWT(m *helpers.JWTManager) { jwtManager = m }

func GetJWT() *helpers.JWTManager { return jwtManager }

func SetRabbitPub(p *helpers.RabbitPublisher) { rabbitPub = p }

func GetRabbitPub() *helpers.RabbitPublisher { return rabbitPub }

func SetES(c *elasticsearch.Client) { esClient = c }

func GetES() *elasticsearch.Client { return esClient }
