// Package main provides the admin tooling of the NGO website backend. Admin
// accounts can only be created here, there is no public registration.
//
//	cli [flags] adduser|passwd|deluser|users|export|import
package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/helpinghands/ngo-backend/content"
	"github.com/helpinghands/ngo-backend/db"
	"github.com/helpinghands/ngo-backend/internal"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.vocdoni.io/dvote/log"
)

func main() {
	// Define command-line flags
	flag.StringP("mongo-url", "m", "", "MongoDB connection URL")
	flag.StringP("mongo-db", "d", "ngo-website", "MongoDB database name")
	flag.String("mongo-user", "", "MongoDB username")
	flag.String("mongo-pass", "", "MongoDB password")
	flag.StringP("email", "e", "", "email of the admin account")
	flag.StringP("name", "n", "", "name of the admin account (adduser)")
	flag.StringP("password", "w", "", "password of the admin account (adduser, passwd)")
	flag.StringP("file", "f", "", "file to export to or import from, stdout if empty on export")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] adduser|passwd|deluser|users|export|import\n", os.Args[0])
		flag.PrintDefaults()
	}

	// Parse flags
	flag.Parse()

	// Initialize Viper for environment variable support
	viper.SetEnvPrefix("NGO")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	if err := viper.BindPFlags(flag.CommandLine); err != nil {
		log.Fatalf("could not bind flags: %v", err)
	}
	viper.AutomaticEnv()
	// Initialize logger
	log.Init("warn", "stderr", nil)

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	// Initialize MongoDB database
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

	if err := run(database, flag.Arg(0)); err != nil {
		log.Fatalf("%s failed: %v", flag.Arg(0), err)
	}
}

func run(database *db.MongoStorage, command string) error {
	users := content.New(database, nil)
	email := internal.NormalizeEmail(viper.GetString("email"))
	switch command {
	case "adduser":
		res := users.CreateUser(content.UserRequest{
			Name:     viper.GetString("name"),
			Email:    email,
			Password: viper.GetString("password"),
		})
		if !res.Success {
			return fmt.Errorf("%s", res.Message)
		}
		fmt.Printf("admin %s created with id %s\n", res.User.Email, res.User.ID)
	case "passwd":
		user, err := database.UserByEmail(email)
		if err != nil {
			return err
		}
		password := viper.GetString("password")
		res := users.UpdateUser(user.ID.Hex(), content.UserUpdateRequest{
			Name:     user.Name,
			Email:    user.Email,
			Password: &password,
		})
		if !res.Success {
			return fmt.Errorf("%s", res.Message)
		}
		fmt.Printf("password of %s updated\n", user.Email)
	case "deluser":
		user, err := database.UserByEmail(email)
		if err != nil {
			return err
		}
		if res := users.DeleteUser(user.ID.Hex()); !res.Success {
			return fmt.Errorf("%s", res.Message)
		}
		fmt.Printf("admin %s deleted\n", user.Email)
	case "users":
		res := users.ListUsers()
		if !res.Success {
			return fmt.Errorf("%s", res.Message)
		}
		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tCREATED")
		for _, u := range res.Users {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, u.CreatedAt.Format("2006-01-02"))
		}
		return tw.Flush()
	case "export":
		dump := database.String()
		if file := viper.GetString("file"); file != "" {
			return os.WriteFile(file, []byte(dump), 0o600)
		}
		fmt.Println(dump)
	case "import":
		file := viper.GetString("file")
		if file == "" {
			return fmt.Errorf("file is required")
		}
		data, err := os.ReadFile(file)
		if err != nil {
			return err
		}
		return database.Import(data)
	default:
		return fmt.Errorf("unknown command %q", command)
	}
	return nil
}
