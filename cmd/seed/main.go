package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BloggingApp/post-service/internal/config"
	"github.com/BloggingApp/post-service/internal/model"
	"github.com/BloggingApp/post-service/internal/repository/postgres"
	"github.com/BloggingApp/post-service/pkg/utils"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type seedOptions struct {
	authors        int
	postsPerAuthor int
	seed           int64
}

func main() {
	opts := seedOptions{}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill the post-service database with demo authors, posts, comments and follows",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
		SilenceUsage: true,
	}
	cmd.Flags().IntVar(&opts.authors, "authors", 5, "number of authors to create")
	cmd.Flags().IntVar(&opts.postsPerAuthor, "posts", 13, "number of posts per author")
	cmd.Flags().Int64Var(&opts.seed, "seed", time.Now().UnixNano(), "gofakeit seed")

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, opts seedOptions) error {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	if err := config.LoadEnv(); err != nil {
		return fmt.Errorf("load environment variables: %w", err)
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("initialize yaml config: %w", err)
	}

	db, err := pgxpool.New(ctx, cfg.Postgres.URL)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer db.Close()

	if err := postgres.Migrate(ctx, db); err != nil {
		return fmt.Errorf("migrate postgres: %w", err)
	}

	gofakeit.Seed(opts.seed)
	repo := postgres.New(db)

	group, err := repo.Group.Create(ctx, model.Group{
		Title:       "Test group",
		Slug:        "test",
		Description: gofakeit.Sentence(12),
	})
	if err != nil && !errors.Is(err, postgres.ErrDuplicate) {
		return fmt.Errorf("create group: %w", err)
	}
	if group == nil {
		if group, err = repo.Group.FindBySlug(ctx, "test"); err != nil {
			return fmt.Errorf("find group: %w", err)
		}
	}

	authors := make([]*model.Author, 0, opts.authors)
	for i := 0; i < opts.authors; i++ {
		author, err := repo.Author.Upsert(ctx, model.Author{
			ID:       uuid.New(),
			Username: strings.ToLower(gofakeit.Username()) + fmt.Sprint(gofakeit.Number(100, 999)),
		})
		if err != nil {
			return fmt.Errorf("create author: %w", err)
		}
		authors = append(authors, author)

		for j := 0; j < opts.postsPerAuthor; j++ {
			post := model.Post{
				Text:     gofakeit.Paragraph(1, 3, 8, " "),
				AuthorID: author.ID,
			}
			if len([]rune(post.Text)) > cfg.Posts.MaxTextLen {
				post.Text = string([]rune(post.Text)[:cfg.Posts.MaxTextLen])
			}
			if gofakeit.Bool() {
				post.GroupID = &group.ID
			}

			created, err := repo.Post.Create(ctx, post)
			if err != nil {
				return fmt.Errorf("create post: %w", err)
			}

			if _, err := repo.Comment.Create(ctx, model.Comment{
				PostID:   created.ID,
				AuthorID: authors[gofakeit.Number(0, len(authors)-1)].ID,
				Text:     gofakeit.Sentence(6),
			}); err != nil {
				return fmt.Errorf("create comment: %w", err)
			}
		}
	}

	for _, follower := range authors {
		for _, followee := range authors {
			if follower.ID == followee.ID || !gofakeit.Bool() {
				continue
			}
			if _, err := repo.Follow.Create(ctx, model.Follow{FollowerID: follower.ID, FolloweeID: followee.ID}); err != nil {
				return fmt.Errorf("create follow: %w", err)
			}
		}
	}

	logger.Sugar().Infof("seeded %d authors with %d posts each", len(authors), opts.postsPerAuthor)

	if len(authors) == 0 || cfg.Secrets.AccessSecret == "" {
		return nil
	}

	first := authors[0]
	token, err := utils.GenerateAccessToken([]byte(cfg.Secrets.AccessSecret), jwt.MapClaims{
		"id":       first.ID.String(),
		"username": first.Username,
		"role":     model.ROLE_ADMIN,
	}, 24*time.Hour)
	if err != nil {
		return fmt.Errorf("sign access token: %w", err)
	}

	fmt.Printf("admin @%s access token:\n%s\n", first.Username, token)

	return nil
}
