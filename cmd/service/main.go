package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/helpinghands/ngo-backend/api"
	"github.com/helpinghands/ngo-backend/api/apicommon"
	"github.com/helpinghands/ngo-backend/auth"
	"github.com/helpinghands/ngo-backend/content"
	"github.com/helpinghands/ngo-backend/db"
	"github.com/helpinghands/ngo-backend/notifications"
	"github.com/helpinghands/ngo-backend/notifications/mailtemplates"
	"github.com/helpinghands/ngo-backend/notifications/sendgrid"
	"github.com/helpinghands/ngo-backend/notifications/smtp"
	"github.com/helpinghands/ngo-backend/pagecache"
	"github.com/helpinghands/ngo-backend/stripe"
	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.vocdoni.io/dvote/log"
)

func main() {
	// define flags
	flag.String("env-file", ".env", "optional file with environment variables to load")
	flag.StringP("host", "h", "0.0.0.0", "listen address")
	flag.IntP("port", "p", 8080, "listen port")
	flag.StringP("secret", "s", "", "session signing secret (required)")
	flag.String("env", "development", "deployment environment, production enables secure cookies")
	flag.String("log-level", "info", "log level (debug, info, warn, error)")
	flag.String("mongo-url", "", "the URL of the MongoDB server")
	flag.String("mongo-db", "ngo-website", "the name of the MongoDB database")
	flag.String("mongo-user", "", "MongoDB username")
	flag.String("mongo-pass", "", "MongoDB password")
	flag.Int("page-cache-size", pagecache.DefaultSize, "maximum number of cached pages")
	flag.StringSlice("allowed-origins", nil, "origins allowed to call the API, any if empty")
	// organization
	flag.String("org-name", "Helping Hands", "name of the organization")
	flag.String("org-phone", "", "contact phone of the organization")
	flag.String("org-address", "", "postal address of the organization")
	flag.String("notify-address", "", "inbox of the organization, receives the contact messages")
	// email
	flag.String("mail-from-address", "", "sender address of the emails")
	flag.String("mail-from-name", "", "sender name of the emails, the organization name if empty")
	flag.String("smtp-server", "", "SMTP server")
	flag.Int("smtp-port", 587, "SMTP port")
	flag.String("smtp-username", "", "SMTP username")
	flag.String("smtp-password", "", "SMTP password")
	flag.String("sendgrid-api-key", "", "SendGrid API key, used instead of SMTP when set")
	// stripe
	flag.String("stripe-api-key", "", "Stripe secret key, enables the donation checkout")
	flag.String("stripe-webhook-secret", "", "Stripe webhook signing secret, enables the payment confirmations")
	flag.String("stripe-currency", stripe.DefaultCurrency, "currency of the donations")
	flag.String("stripe-success-url", "", "page shown after a paid checkout")
	flag.String("stripe-cancel-url", "", "page shown after a canceled checkout")
	// parse flags
	flag.Parse()

	// load the .env file if it exists, the variables already set win
	envFile, _ := flag.CommandLine.GetString("env-file")
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		panic(err)
	}
	// initialize Viper
	viper.SetEnvPrefix("NGO")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	if err := viper.BindPFlags(flag.CommandLine); err != nil {
		panic(err)
	}
	viper.AutomaticEnv()

	log.Init(viper.GetString("log-level"), "stdout", nil)
	// read the configuration
	host := viper.GetString("host")
	port := viper.GetInt("port")
	secret := viper.GetString("secret")
	if secret == "" {
		log.Fatal("secret is required")
	}
	orgName := viper.GetString("org-name")
	notifyAddress := viper.GetString("notify-address")

	// initialize the MongoDB database, it connects on the first operation
	database, err := db.New(&db.Config{
		MongoURL: viper.GetString("mongo-url"),
		Database: viper.GetString("mongo-db"),
		Username: viper.GetString("mongo-user"),
		Password: viper.GetString("mongo-pass"),
	})
	if err != nil {
		log.Fatalf("could not create the MongoDB database: %v", err)
	}
	defer database.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.Connect(ctx); err != nil {
		// the operations retry the connection, the server can start anyway
		log.Warnw("MongoDB not available yet", "error", err)
	}
	cancel()

	pages, err := pagecache.New(viper.GetInt("page-cache-size"))
	if err != nil {
		log.Fatalf("could not create the page cache: %v", err)
	}

	opts := []content.Option{}
	mail, err := mailService(orgName)
	if err != nil {
		log.Fatalf("could not create the mail service: %v", err)
	}
	if mail != nil {
		if err := mailtemplates.Load(); err != nil {
			log.Fatalf("could not load the mail templates: %v", err)
		}
		opts = append(opts, content.WithNotifier(mail, notifyAddress, orgName))
	}
	contentService := content.New(database, pages, opts...)

	authService, err := auth.New(&auth.Config{
		Secret:     secret,
		Production: viper.GetString("env") == "production",
	}, database)
	if err != nil {
		log.Fatalf("could not create the authentication service: %v", err)
	}

	var stripeService *stripe.Service
	stripeConf := &stripe.Config{
		APIKey:        viper.GetString("stripe-api-key"),
		WebhookSecret: viper.GetString("stripe-webhook-secret"),
		Currency:      viper.GetString("stripe-currency"),
		SuccessURL:    viper.GetString("stripe-success-url"),
		CancelURL:     viper.GetString("stripe-cancel-url"),
	}
	if stripeConf.CheckoutEnabled() || stripeConf.WebhookEnabled() {
		if stripeService, err = stripe.NewService(stripeConf, contentService); err != nil {
			log.Fatalf("could not create the stripe service: %v", err)
		}
		defer stripeService.Close()
		log.Infow("stripe enabled", "checkout", stripeConf.CheckoutEnabled(), "webhook", stripeConf.WebhookEnabled())
	}

	// create the local API server
	server, err := api.New(&api.Config{
		Host:           host,
		Port:           port,
		Auth:           authService,
		Content:        contentService,
		Pages:          pages,
		Stripe:         stripeService,
		AllowedOrigins: viper.GetStringSlice("allowed-origins"),
		Organization: apicommon.Organization{
			Name:    orgName,
			Email:   notifyAddress,
			Phone:   viper.GetString("org-phone"),
			Address: viper.GetString("org-address"),
		},
	})
	if err != nil {
		log.Fatalf("could not create the API server: %v", err)
	}
	server.Start()
	log.Infow("server started", "host", host, "port", port)

	// wait until the process is stopped, as the server is running in a goroutine
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warnw("server shutdown failed", "error", err)
	}
}

// mailService creates the SendGrid or the SMTP notification service
// depending on the settings. It returns nil if no email service is set up.
func mailService(orgName string) (notifications.NotificationService, error) {
	fromName := viper.GetString("mail-from-name")
	if fromName == "" {
		fromName = orgName
	}
	fromAddress := viper.GetString("mail-from-address")
	if apiKey := viper.GetString("sendgrid-api-key"); apiKey != "" {
		service := new(sendgrid.Email)
		if err := service.Init(&sendgrid.Config{
			FromName:    fromName,
			FromAddress: fromAddress,
			APIKey:      apiKey,
		}); err != nil {
			return nil, err
		}
		log.Infow("sendgrid mail service enabled", "from", fromAddress)
		return service, nil
	}
	server := viper.GetString("smtp-server")
	if server == "" {
		log.Infow("no mail service configured, notifications disabled")
		return nil, nil
	}
	service := new(smtp.Email)
	if err := service.Init(&smtp.Config{
		FromName:     fromName,
		FromAddress:  fromAddress,
		SMTPUsername: viper.GetString("smtp-username"),
		SMTPPassword: viper.GetString("smtp-password"),
		SMTPServer:   server,
		SMTPPort:     viper.GetInt("smtp-port"),
	}); err != nil {
		return nil, err
	}
	log.Infow("smtp mail service enabled", "server", server, "from", fromAddress)
	return service, nil
}
