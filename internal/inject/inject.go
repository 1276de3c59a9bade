package inject

import (
	"context"
	"fmt"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudfront"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/dverbeek/promptbooth/internal/catalog"
	"github.com/dverbeek/promptbooth/internal/config"
	"github.com/dverbeek/promptbooth/internal/feed"
	"github.com/dverbeek/promptbooth/internal/gallery"
	"github.com/dverbeek/promptbooth/internal/handler"
	"github.com/dverbeek/promptbooth/internal/image"
	"github.com/dverbeek/promptbooth/internal/log"
	"github.com/dverbeek/promptbooth/internal/page"
	"github.com/dverbeek/promptbooth/internal/param"
	"github.com/dverbeek/promptbooth/internal/post"
	"github.com/dverbeek/promptbooth/internal/prompt"
	"github.com/dverbeek/promptbooth/internal/showcase"
	"github.com/dverbeek/promptbooth/internal/store"
	"github.com/samber/do"
	"github.com/samber/lo"
)

// Setup builds the dependency graph from the loaded configuration. Providers
// are lazy, so AWS clients are only constructed when a component asks for
// them.
func Setup(ctx context.Context, cfg *config.Config) *do.Injector {
	logger := log.FromContextOrDiscard(ctx)

	injector := do.NewWithOpts(&do.InjectorOpts{
		Logf: func(format string, args ...any) {
			logger.Debug(fmt.Sprintf(format, args...))
		},
	})

	do.Provide[aws.Config](injector, func(i *do.Injector) (aws.Config, error) {
		return awsconfig.LoadDefaultConfig(ctx)
	})
	do.Provide[*ssm.Client](injector, func(i *do.Injector) (*ssm.Client, error) {
		return ssm.NewFromConfig(do.MustInvoke[aws.Config](i)), nil
	})
	do.Provide[*s3.Client](injector, func(i *do.Injector) (*s3.Client, error) {
		return s3.NewFromConfig(do.MustInvoke[aws.Config](i)), nil
	})
	do.Provide[*cloudfront.Client](injector, func(i *do.Injector) (*cloudfront.Client, error) {
		return cloudfront.NewFromConfig(do.MustInvoke[aws.Config](i)), nil
	})
	do.ProvideValue[*http.Client](injector, http.DefaultClient)

	if cfg.ParamStore == "ssm" {
		do.Provide[param.Fetcher](injector, param.NewParameterStoreFetcher)
	} else {
		do.Provide[param.Fetcher](injector, param.NewEnvFetcher)
	}

	do.ProvideNamedValue[string](injector, "backend_api_root", cfg.Backend.APIRoot)
	do.ProvideNamed[string](injector, "backend_api_key", func(i *do.Injector) (string, error) {
		if cfg.Backend.APIKeyParam != "" {
			return do.MustInvoke[param.Fetcher](i).Fetch(ctx, cfg.Backend.APIKeyParam)
		}
		return cfg.Backend.APIKey, nil
	})
	do.ProvideNamed[[]string](injector, "showcase_prompts", func(i *do.Injector) ([]string, error) {
		if cfg.Showcase.PromptsParam != "" {
			return do.MustInvoke[param.Fetcher](i).FetchAll(ctx, cfg.Showcase.PromptsParam)
		}
		return cfg.Showcase.Prompts, nil
	})
	do.ProvideNamed[string](injector, "reddit_client_id", func(i *do.Injector) (string, error) {
		return do.MustInvoke[param.Fetcher](i).Fetch(ctx, cfg.Showcase.Reddit.ClientIDParam)
	})
	do.ProvideNamed[string](injector, "reddit_client_secret", func(i *do.Injector) (string, error) {
		return do.MustInvoke[param.Fetcher](i).Fetch(ctx, cfg.Showcase.Reddit.ClientSecretParam)
	})
	do.ProvideNamed[string](injector, "reddit_username", func(i *do.Injector) (string, error) {
		return do.MustInvoke[param.Fetcher](i).Fetch(ctx, cfg.Showcase.Reddit.UsernameParam)
	})
	do.ProvideNamed[string](injector, "reddit_password", func(i *do.Injector) (string, error) {
		return do.MustInvoke[param.Fetcher](i).Fetch(ctx, cfg.Showcase.Reddit.PasswordParam)
	})

	do.ProvideNamedValue[string](injector, "bucket", cfg.Gallery.Bucket)
	do.ProvideNamedValue[string](injector, "distribution", cfg.Gallery.Distribution)
	do.ProvideNamedValue[string](injector, "subreddit", cfg.Showcase.Subreddit)
	do.ProvideNamedValue[string](injector, "public_url", cfg.PublicURL)
	do.ProvideNamedValue[string](injector, "default_model", cfg.DefaultModel)
	do.ProvideNamedValue[int](injector, "default_steps", cfg.DefaultSteps)
	do.ProvideNamedValue[bool](injector, "showcase_enhance", cfg.Showcase.Enhance)
	// the local image route only exists when images live on disk
	do.ProvideNamedValue[string](injector, "images_dir", lo.Ternary(cfg.Gallery.Bucket == "", cfg.Gallery.LocalDir, ""))

	do.ProvideValue[catalog.Catalog](injector, catalog.New(cfg.Models))
	do.Provide[*prompt.Randomizer](injector, prompt.NewRandomizer)
	do.Provide[image.Generator](injector, image.NewSiliconFlowGenerator)

	if cfg.Gallery.Bucket != "" {
		do.Provide[store.Uploader](injector, store.NewS3Uploader)
		do.Provide[store.Lister](injector, store.NewS3Lister)
	} else {
		do.Provide[store.Uploader](injector, func(i *do.Injector) (store.Uploader, error) {
			return &store.FileUploader{Dir: cfg.Gallery.LocalDir}, nil
		})
		do.Provide[store.Lister](injector, func(i *do.Injector) (store.Lister, error) {
			return &store.FileLister{Dir: cfg.Gallery.LocalDir}, nil
		})
	}
	if cfg.Gallery.Distribution != "" {
		do.Provide[store.Invalidator](injector, store.NewCloudFrontInvalidator)
	} else {
		do.Provide[store.Invalidator](injector, func(i *do.Injector) (store.Invalidator, error) {
			return store.NoopInvalidator{}, nil
		})
	}

	do.Provide[*gallery.Gallery](injector, gallery.New)
	do.Provide[*feed.Generator](injector, feed.NewGenerator)
	do.Provide[*page.Templator](injector, page.NewTemplator)

	if cfg.Showcase.Subreddit != "" {
		do.Provide[post.Poster](injector, post.NewRedditPoster)
	} else {
		do.Provide[post.Poster](injector, func(i *do.Injector) (post.Poster, error) {
			return post.NopPoster{}, nil
		})
	}

	do.Provide[*handler.Server](injector, handler.NewServer)
	do.Provide[*showcase.Handler](injector, showcase.NewHandler)

	return injector
}
