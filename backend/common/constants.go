package common

import (
	"flag"
	"time"
)

var Version = "v0.0.0" // set at build time with -ldflags

var (
	Port          = flag.Int("port", 5000, "the listening port")
	PrintVersion  = flag.Bool("version", false, "print version and exit")
	PrintHelpFlag = flag.Bool("help", false, "print help and exit")
	LogDir        = flag.String("log-dir", "", "specify the log directory")
)

var ServerAddress = "http://localhost:5000"

// Secrets
var (
	JWTSecret        = ""
	JWTRefreshSecret = ""
)

// Persistence
var (
	SQLDSN     = ""
	SQLitePath = "healthmate.db"
	MongoURI   = ""
	MongoDB    = "healthmate"
)

// Redis
var (
	RedisConnString = ""
	RedisEnabled    = true
)

// Storage
var (
	CloudinaryCloudName = ""
	CloudinaryAPIKey    = ""
	CloudinaryAPISecret = ""
	CloudinaryFolder    = "healthmate_uploads"
	UploadPath          = "upload"
	MaxUploadSize       = int64(20 << 20)
)

// AI analysis
var (
	AIEndpoint = ""
	AIAPIKey   = ""
	AIModel    = "healthmate-report-v1"
	AITimeout  = 60 * time.Second
)

var CORSOrigins = []string{
	"http://localhost:3000",
	"https://healthmate-two.vercel.app",
}

var (
	GlobalApiRateLimitNum      = 180
	GlobalApiRateLimitDuration = time.Minute

	CriticalRateLimitNum      = 20
	CriticalRateLimitDuration = 20 * time.Minute
)

const (
	RoleCommonUser = 1
)

const (
	UserStatusEnabled  = 1
	UserStatusDisabled = 2
)

const (
	AccessTokenTTL  = 7 * 24 * time.Hour
	RefreshTokenTTL = 30 * 24 * time.Hour
	TokenIssuer     = "healthmate"
)

// Accepted upload MIME types. Images are matched by prefix.
const (
	ContentTypePDF   = "application/pdf"
	ImageTypePrefix  = "image/"
	OctetStreamType  = "application/octet-stream"
	AnalysisCacheTTL = time.Hour
)
