package post

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/dverbeek/promptbooth/internal/log"
	"github.com/samber/do"
	"github.com/samber/lo"
	"github.com/vartanbeno/go-reddit/v2/reddit"
)

type RedditPoster struct {
	client    *reddit.Client
	subreddit string
}

func NewRedditPoster(i *do.Injector) (Poster, error) {
	creds := reddit.Credentials{
		ID:       do.MustInvokeNamed[string](i, "reddit_client_id"),
		Secret:   do.MustInvokeNamed[string](i, "reddit_client_secret"),
		Username: do.MustInvokeNamed[string](i, "reddit_username"),
		Password: do.MustInvokeNamed[string](i, "reddit_password"),
	}
	subreddit := do.MustInvokeNamed[string](i, "subreddit")

	info, _ := debug.ReadBuildInfo()
	revision := lo.FindOrElse(info.Settings, debug.BuildSetting{Value: "unknown"}, func(s debug.BuildSetting) bool {
		return s.Key == "vcs.revision"
	})

	client, err := reddit.NewClient(creds, reddit.WithUserAgent("web:promptbooth:"+revision.Value))
	if err != nil {
		return nil, err
	}
	return &RedditPoster{client, subreddit}, nil
}

func (p *RedditPoster) Post(ctx context.Context, params Params) error {
	log.FromContextOrDiscard(ctx).Info("posting to reddit", "subreddit", p.subreddit, "name", params.Name)

	_, _, err := p.client.Post.SubmitLink(ctx, reddit.SubmitLinkRequest{
		Subreddit:   p.subreddit,
		Title:       fmt.Sprintf("%s (%s)", params.Prompt, params.Model),
		URL:         params.URL,
		SendReplies: lo.ToPtr(false),
	})
	return err
}
