package transfer

// LinkedinUserinfo is the OpenID userinfo document returned by
// GET /v2/userinfo.
type LinkedinUserinfo struct {
	Sub        string `json:"sub"`
	Name       string `json:"name"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Email      string `json:"email"`
	Picture    string `json:"picture"`
	Headline   string `json:"headline"`
}

type RegisterUploadRequest struct {
	RegisterUploadRequest RegisterUploadBody `json:"registerUploadRequest"`
}

type RegisterUploadBody struct {
	Recipes              []string              `json:"recipes"`
	Owner                string                `json:"owner"`
	ServiceRelationships []ServiceRelationship `json:"serviceRelationships"`
}

type ServiceRelationship struct {
	RelationshipType string `json:"relationshipType"`
	Identifier       string `json:"identifier"`
}

type RegisterUploadResponse struct {
	Value struct {
		Asset           string `json:"asset"`
		UploadMechanism struct {
			MediaUploadHTTPRequest struct {
				UploadURL string            `json:"uploadUrl"`
				Headers   map[string]string `json:"headers"`
			} `json:"com.linkedin.digitalmedia.uploading.MediaUploadHttpRequest"`
		} `json:"uploadMechanism"`
	} `json:"value"`
}

type UGCPostRequest struct {
	Author          string             `json:"author"`
	LifecycleState  string             `json:"lifecycleState"`
	SpecificContent UGCSpecificContent `json:"specificContent"`
	Visibility      UGCVisibility      `json:"visibility"`
}

type UGCVisibility struct {
	MemberNetworkVisibility string `json:"com.linkedin.ugc.MemberNetworkVisibility"`
}

type UGCSpecificContent struct {
	ShareContent UGCShareContent `json:"com.linkedin.ugc.ShareContent"`
}

type UGCShareContent struct {
	ShareCommentary    UGCText         `json:"shareCommentary"`
	ShareMediaCategory string          `json:"shareMediaCategory"`
	Media              []UGCShareMedia `json:"media,omitempty"`
}

type UGCText struct {
	Text string `json:"text"`
}

type UGCShareMedia struct {
	Status string `json:"status"`
	Media  string `json:"media"`
}

type UGCPostResponse struct {
	ID string `json:"id"`
}

type LinkedinTokenResponse struct {
	AccessToken           string `json:"access_token"`
	ExpiresIn             int    `json:"expires_in"`
	RefreshToken          string `json:"refresh_token"`
	RefreshTokenExpiresIn int    `json:"refresh_token_expires_in"`
	Scope                 string `json:"scope"`
}
