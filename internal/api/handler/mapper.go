package handler

import "github.com/99minutos/account-service/internal/core/domain"

func toPostResponse(p *domain.Post) postResponse {
	return postResponse{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toPostList(posts []*domain.Post) []postResponse {
	out := make([]postResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, toPostResponse(p))
	}
	return out
}

func toOwnedPost(p *domain.Post) ownedPostResponse {
	return ownedPostResponse{postResponse: toPostResponse(p), OwnerID: p.OwnerID}
}

func toAdminPostList(posts []domain.PostWithOwner) []adminPostResponse {
	out := make([]adminPostResponse, 0, len(posts))
	for i := range posts {
		out = append(out, adminPostResponse{
			postResponse: toPostResponse(&posts[i].Post),
			User:         posts[i].Owner,
		})
	}
	return out
}

func toProfile(r profileRequest) domain.Profile {
	return domain.Profile{
		Name:    r.Name,
		Age:     *r.Age,
		Gender:  r.Gender,
		City:    r.City,
		Country: r.Country,
		Address: r.Address,
	}
}

func toProfilePatch(r profilePatchRequest) domain.ProfilePatch {
	return domain.ProfilePatch{
		Name:    r.Name,
		Age:     r.Age,
		Gender:  r.Gender,
		City:    r.City,
		Country: r.Country,
		Address: r.Address,
	}
}
