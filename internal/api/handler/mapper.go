package handler

import (
	"github.com/solosphere/jobs-api/internal/core/domain"
)

func toBid(req placeBidRequest) domain.Bid {
	bid := domain.Bid{
		JobID:    req.JobID,
		Title:    req.Title,
		Email:    req.Email,
		Price:    req.Price,
		Comment:  req.Comment,
		Deadline: req.Deadline,
		Category: req.Category,
		Status:   domain.BidStatus(req.Status),
		Extra:    req.Extra,
	}
	if req.Buyer != nil {
		bid.Buyer = &domain.Buyer{
			Email: req.Buyer.Email,
			Name:  req.Buyer.Name,
			Photo: req.Buyer.Photo,
		}
	}
	return bid
}

func toUpsertResponse(res *domain.UpsertResult) updateResponse {
	out := updateResponse{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedID:    res.UpsertedID,
	}
	if res.UpsertedID != "" {
		out.UpsertedCount = 1
	}
	return out
}

func toUpdateResponse(res *domain.UpdateResult) updateResponse {
	return updateResponse{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
	}
}
