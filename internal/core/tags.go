package core

import (
	"context"

	"github.com/mdobak/go-xerrors"
)

func (c *Core) GetTags(ctx context.Context) ([]string, error) {
	tags, err := c.articles.GetTags(ctx)
	if err != nil {
		return nil, xerrors.New(err)
	}
	if tags == nil {
		tags = []string{}
	}
	return tags, nil
}
