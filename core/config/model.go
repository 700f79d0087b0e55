package config

// Artworked config params struct.
type Artworked struct {
	Environment string
	Secret      string
	RouteSecret string
	LogLevel    string
	SentryDSN   string
	Recount     int
	Store       artworkedStore
	Broker      artworkedBroker
	Media       artworkedMedia
	Mail        artworkedMail
}

// Development tells whether the api runs in debug mode.
func (a Artworked) Development() bool {
	return a.Environment == "development"
}

type artworkedStore struct {
	Driver   string
	MongoURL string
	MongoDB  string
}

type artworkedBroker struct {
	Driver string
	Redis  string
}

type artworkedMedia struct {
	Driver       string
	BaseURL      string
	APISecret    string
	UploadPreset string
	AccessKey    string
	SecretKey    string
	Bucket       string
}

type artworkedMail struct {
	Server   string
	Port     int
	User     string
	Password string
	From     string
}

var defaults = Artworked{
	Environment: "development",
	Store: artworkedStore{
		Driver:  "memory",
		MongoDB: "artworked",
	},
	Broker: artworkedBroker{
		Driver: "local",
	},
	Media: artworkedMedia{
		Driver:       "memory",
		BaseURL:      "http://localhost:3200/media/",
		UploadPreset: "artworked",
	},
	Mail: artworkedMail{
		Port: 587,
		From: "no-reply@artworked.app",
	},
}
