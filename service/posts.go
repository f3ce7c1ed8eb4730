package service

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"blogfront/app/client"
	"blogfront/app/config"
	"blogfront/app/models"
)

// RunPostsCommand lists posts from the blog API on stdout, using the same
// query the page builds for Load, Sort and Search.
func RunPostsCommand(cfg *config.Config, args []string) int {
	return runPosts(cfg, args, os.Stdout)
}

func runPosts(cfg *config.Config, args []string, out io.Writer) int {
	fs := flag.NewFlagSet("posts", flag.ContinueOnError)
	fs.SetOutput(out)
	s := models.Settings{}
	fs.StringVar(&s.BaseURL, "base-url", cfg.DefaultBaseURL, "API base URL")
	fs.StringVar(&s.SortField, "sort", models.DefaultSortField, "sort field: title, content, author or date")
	fs.StringVar(&s.Direction, "direction", models.DefaultDirection, "sort direction: asc or desc")
	fs.StringVar(&s.Query, "q", "", "search query")
	fs.IntVar(&s.Page, "page", 0, "page number")
	fs.IntVar(&s.Limit, "limit", 0, "posts per page")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	s = s.WithDefaults()
	if err := s.Validate(); err != nil {
		fmt.Fprintf(out, "Error: invalid settings: %v\n", err)
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	defer cancel()

	posts, err := client.New(cfg.RequestTimeout).ListPosts(ctx, s)
	if err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
		return 1
	}

	printPosts(out, posts)
	return 0
}

func printPosts(out io.Writer, posts []*models.Post) {
	if len(posts) == 0 {
		fmt.Fprintln(out, "No posts")
		return
	}
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tAUTHOR\tDATE\tLIKES\tCOMMENTS")
	for _, p := range posts {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%d\n", p.ID, p.Title, p.Author, p.Date, p.Likes, p.CommentCount())
	}
	tw.Flush()
}
