package main

import (
	"context"
	"flag"
	"os"

	"photogram/internal/config"
	"photogram/internal/database"
	"photogram/internal/middleware"
	"photogram/internal/seed"
)

func main() {
	opts := seed.DefaultOptions()
	flag.IntVar(&opts.Users, "users", opts.Users, "number of users to create")
	flag.IntVar(&opts.PostsPerUser, "posts", opts.PostsPerUser, "posts per user")
	flag.IntVar(&opts.FollowsPerUser, "follows", opts.FollowsPerUser, "follow toggles per user")
	flag.IntVar(&opts.LikesPerUser, "likes", opts.LikesPerUser, "like toggles per user")
	flag.StringVar(&opts.Password, "password", opts.Password, "password for all seeded accounts")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		middleware.Logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		middleware.Logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	if err := seed.Run(context.Background(), db, opts); err != nil {
		middleware.Logger.Error("seeding failed", "error", err)
		os.Exit(1)
	}
}
