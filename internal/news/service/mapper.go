package service

import (
	"hotnews-aggregator/internal/entity"
	"hotnews-aggregator/internal/news/dto"
)

func mapPlatform(p entity.Platform) dto.PlatformResponse {
	return dto.PlatformResponse{
		ID:          p.ID,
		Name:        p.Name,
		Category:    string(p.Category),
		Weight:      p.Weight,
		Enabled:     p.Enabled,
		IconURL:     p.IconURL,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func mapNews(n entity.News) dto.NewsResponse {
	resp := dto.NewsResponse{
		ID:             n.ID,
		PlatformID:     n.PlatformID,
		Title:          n.Title,
		URL:            n.URL,
		APIScore:       n.APIScore,
		FinalScore:     n.FinalScore,
		HotRank:        n.HotRank,
		ContentSnippet: n.ContentSnippet,
		ImageURL:       n.ImageURL,
		PublishedAt:    n.PublishedAt,
		FetchedAt:      n.FetchedAt,
		FetchedDate:    n.FetchedDate,
	}
	if n.Platform != nil {
		platform := mapPlatform(*n.Platform)
		resp.Platform = &platform
	}
	return resp
}

func mapSearchRows(rows []entity.SearchHistory) []dto.SearchKeywordResponse {
	out := make([]dto.SearchKeywordResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.SearchKeywordResponse{
			Keyword:        r.Keyword,
			SearchCount:    r.SearchCount,
			LastSearchedAt: r.LastSearchedAt,
		})
	}
	return out
}

func mapNewsList(items []entity.News) []dto.NewsResponse {
	out := make([]dto.NewsResponse, 0, len(items))
	for _, n := range items {
		out = append(out, mapNews(n))
	}
	return out
}
