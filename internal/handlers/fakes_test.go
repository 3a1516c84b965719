package handlers

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AnuragSingh2101/backend/internal/media"
	"github.com/AnuragSingh2101/backend/internal/models"
	"github.com/AnuragSingh2101/backend/internal/repositories"
)

// In-memory repository fakes. They implement just enough of the Mongo
// repositories' behavior for handler tests: lookups by id, ownership data
// and insertion order.

type fakeUserRepo struct {
	users map[primitive.ObjectID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[primitive.ObjectID]*models.User{}}
}

func (r *fakeUserRepo) CreateUser(_ context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	if user.WatchHistory == nil {
		user.WatchHistory = []primitive.ObjectID{}
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetUserByID(_ context.Context, id string) (*models.User, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	user, ok := r.users[objID]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) GetUserByEmailOrUsername(_ context.Context, email, username string) (*models.User, error) {
	for _, u := range r.users {
		if (email != "" && u.Email == email) || (username != "" && u.Username == username) {
			return u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) AddVideoToWatchHistory(_ context.Context, userID, videoID primitive.ObjectID) error {
	user, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	for _, id := range user.WatchHistory {
		if id == videoID {
			return nil
		}
	}
	user.WatchHistory = append(user.WatchHistory, videoID)
	return nil
}

type fakeVideoRepo struct {
	videos map[primitive.ObjectID]*models.Video
	order  []primitive.ObjectID
}

func newFakeVideoRepo() *fakeVideoRepo {
	return &fakeVideoRepo{videos: map[primitive.ObjectID]*models.Video{}}
}

func (r *fakeVideoRepo) CreateVideo(_ context.Context, video *models.Video) error {
	video.ID = primitive.NewObjectID()
	video.CreatedAt = time.Now()
	video.UpdatedAt = time.Now()
	r.videos[video.ID] = video
	r.order = append(r.order, video.ID)
	return nil
}

func (r *fakeVideoRepo) GetVideoByID(_ context.Context, id string) (*models.Video, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	video, ok := r.videos[objID]
	if !ok {
		return nil, repositories.ErrVideoNotFound
	}
	return video, nil
}

func (r *fakeVideoRepo) GetVideoWithOwner(ctx context.Context, id string) (*models.VideoWithOwner, error) {
	video, err := r.GetVideoByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return videoWithOwner(video), nil
}

func (r *fakeVideoRepo) GetVideosByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Video, error) {
	videos := []models.Video{}
	for _, id := range ids {
		if v, ok := r.videos[id]; ok {
			videos = append(videos, *v)
		}
	}
	return videos, nil
}

func (r *fakeVideoRepo) ListVideos(_ context.Context, params models.ListVideosParams) (*models.VideoPage, error) {
	page, limit := models.ClampPage(params.Page, params.Limit)
	videos := []models.VideoWithOwner{}
	for _, id := range r.order {
		v := r.videos[id]
		if !v.IsPublished {
			continue
		}
		if params.UserID != "" && v.Owner.Hex() != params.UserID {
			continue
		}
		videos = append(videos, *videoWithOwner(v))
	}
	total := int64(len(videos))
	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}
	return &models.VideoPage{
		Videos:      videos,
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalVideos: total,
	}, nil
}

func (r *fakeVideoRepo) ListChannelVideos(_ context.Context, channelID primitive.ObjectID, page, limit int64) ([]models.Video, int64, error) {
	videos := []models.Video{}
	for _, id := range r.order {
		if v := r.videos[id]; v.Owner == channelID {
			videos = append(videos, *v)
		}
	}
	return videos, int64(len(videos)), nil
}

func (r *fakeVideoRepo) UpdateVideo(_ context.Context, video *models.Video) error {
	if _, ok := r.videos[video.ID]; !ok {
		return repositories.ErrVideoNotFound
	}
	r.videos[video.ID] = video
	return nil
}

func (r *fakeVideoRepo) DeleteVideo(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.videos[id]; !ok {
		return repositories.ErrVideoNotFound
	}
	delete(r.videos, id)
	return nil
}

func (r *fakeVideoRepo) IncrementViews(_ context.Context, id primitive.ObjectID) error {
	if v, ok := r.videos[id]; ok {
		v.Views++
	}
	return nil
}

func (r *fakeVideoRepo) CountByOwner(_ context.Context, ownerID primitive.ObjectID) (int64, error) {
	var count int64
	for _, v := range r.videos {
		if v.Owner == ownerID {
			count++
		}
	}
	return count, nil
}

func (r *fakeVideoRepo) SumViewsByOwner(_ context.Context, ownerID primitive.ObjectID) (int64, error) {
	var sum int64
	for _, v := range r.videos {
		if v.Owner == ownerID {
			sum += v.Views
		}
	}
	return sum, nil
}

func videoWithOwner(v *models.Video) *models.VideoWithOwner {
	return &models.VideoWithOwner{
		ID:          v.ID,
		VideoFile:   v.VideoFile,
		Thumbnail:   v.Thumbnail,
		Title:       v.Title,
		Description: v.Description,
		Duration:    v.Duration,
		Views:       v.Views,
		IsPublished: v.IsPublished,
		CreatedAt:   v.CreatedAt,
	}
}

type fakeCommentRepo struct {
	comments map[primitive.ObjectID]*models.Comment
	order    []primitive.ObjectID
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: map[primitive.ObjectID]*models.Comment{}}
}

func (r *fakeCommentRepo) CreateComment(_ context.Context, comment *models.Comment) error {
	comment.ID = primitive.NewObjectID()
	comment.CreatedAt = time.Now()
	comment.UpdatedAt = time.Now()
	r.comments[comment.ID] = comment
	r.order = append(r.order, comment.ID)
	return nil
}

func (r *fakeCommentRepo) GetCommentByID(_ context.Context, id string) (*models.Comment, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	comment, ok := r.comments[objID]
	if !ok {
		return nil, repositories.ErrCommentNotFound
	}
	return comment, nil
}

func (r *fakeCommentRepo) ListVideoComments(_ context.Context, videoID primitive.ObjectID, page, limit int64) ([]models.CommentWithOwner, int64, error) {
	page, limit = models.ClampPage(page, limit)
	all := []models.CommentWithOwner{}
	for _, id := range r.order {
		c, ok := r.comments[id]
		if !ok || c.Video != videoID {
			continue
		}
		all = append(all, models.CommentWithOwner{
			ID:        c.ID,
			Content:   c.Content,
			Video:     c.Video,
			CreatedAt: c.CreatedAt,
		})
	}
	total := int64(len(all))
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	return all[start:end], total, nil
}

func (r *fakeCommentRepo) UpdateComment(_ context.Context, id primitive.ObjectID, content string) (*models.Comment, error) {
	comment, ok := r.comments[id]
	if !ok {
		return nil, repositories.ErrCommentNotFound
	}
	comment.Content = content
	comment.UpdatedAt = time.Now()
	return comment, nil
}

func (r *fakeCommentRepo) DeleteComment(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.comments[id]; !ok {
		return repositories.ErrCommentNotFound
	}
	delete(r.comments, id)
	return nil
}

func (r *fakeCommentRepo) DeleteCommentsByVideo(_ context.Context, videoID primitive.ObjectID) ([]primitive.ObjectID, error) {
	ids := []primitive.ObjectID{}
	for id, c := range r.comments {
		if c.Video == videoID {
			ids = append(ids, id)
			delete(r.comments, id)
		}
	}
	return ids, nil
}

type fakeLikeRepo struct {
	likes  map[primitive.ObjectID]*models.Like
	order  []primitive.ObjectID
	videos *fakeVideoRepo
}

func newFakeLikeRepo(videos *fakeVideoRepo) *fakeLikeRepo {
	return &fakeLikeRepo{likes: map[primitive.ObjectID]*models.Like{}, videos: videos}
}

func (r *fakeLikeRepo) GetLike(_ context.Context, likedBy primitive.ObjectID, target models.LikeTarget, targetID primitive.ObjectID) (*models.Like, error) {
	for _, l := range r.likes {
		if l.LikedBy == likedBy && l.TargetType == target && l.TargetID == targetID {
			return l, nil
		}
	}
	return nil, repositories.ErrLikeNotFound
}

func (r *fakeLikeRepo) CreateLike(_ context.Context, like *models.Like) error {
	like.ID = primitive.NewObjectID()
	like.CreatedAt = time.Now()
	r.likes[like.ID] = like
	r.order = append(r.order, like.ID)
	return nil
}

func (r *fakeLikeRepo) DeleteLike(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.likes[id]; !ok {
		return repositories.ErrLikeNotFound
	}
	delete(r.likes, id)
	return nil
}

func (r *fakeLikeRepo) CountByTarget(_ context.Context, target models.LikeTarget, targetID primitive.ObjectID) (int64, error) {
	var count int64
	for _, l := range r.likes {
		if l.TargetType == target && l.TargetID == targetID {
			count++
		}
	}
	return count, nil
}

func (r *fakeLikeRepo) GetLikedVideos(_ context.Context, likedBy primitive.ObjectID) ([]models.VideoWithOwner, error) {
	videos := []models.VideoWithOwner{}
	for _, id := range r.order {
		l, ok := r.likes[id]
		if !ok || l.LikedBy != likedBy || l.TargetType != models.LikeTargetVideo {
			continue
		}
		if v, ok := r.videos.videos[l.TargetID]; ok {
			videos = append(videos, *videoWithOwner(v))
		}
	}
	return videos, nil
}

func (r *fakeLikeRepo) DeleteByTargets(_ context.Context, target models.LikeTarget, targetIDs []primitive.ObjectID) error {
	for id, l := range r.likes {
		if l.TargetType != target {
			continue
		}
		for _, tid := range targetIDs {
			if l.TargetID == tid {
				delete(r.likes, id)
				break
			}
		}
	}
	return nil
}

func (r *fakeLikeRepo) CountLikesForChannelVideos(_ context.Context, channelID primitive.ObjectID) (int64, error) {
	var count int64
	for _, l := range r.likes {
		if l.TargetType != models.LikeTargetVideo {
			continue
		}
		if v, ok := r.videos.videos[l.TargetID]; ok && v.Owner == channelID {
			count++
		}
	}
	return count, nil
}

type fakeSubscriptionRepo struct {
	subs map[primitive.ObjectID]*models.Subscription
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{subs: map[primitive.ObjectID]*models.Subscription{}}
}

func (r *fakeSubscriptionRepo) GetSubscription(_ context.Context, subscriber, channel primitive.ObjectID) (*models.Subscription, error) {
	for _, s := range r.subs {
		if s.Subscriber == subscriber && s.Channel == channel {
			return s, nil
		}
	}
	return nil, repositories.ErrSubscriptionNotFound
}

func (r *fakeSubscriptionRepo) CreateSubscription(_ context.Context, sub *models.Subscription) error {
	sub.ID = primitive.NewObjectID()
	sub.CreatedAt = time.Now()
	r.subs[sub.ID] = sub
	return nil
}

func (r *fakeSubscriptionRepo) DeleteSubscription(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.subs[id]; !ok {
		return repositories.ErrSubscriptionNotFound
	}
	delete(r.subs, id)
	return nil
}

func (r *fakeSubscriptionRepo) GetChannelSubscribers(_ context.Context, channelID primitive.ObjectID) (*models.ChannelSubscribers, error) {
	result := &models.ChannelSubscribers{SubscribersList: []models.UserSummary{}}
	for _, s := range r.subs {
		if s.Channel == channelID {
			result.SubscribersList = append(result.SubscribersList, models.UserSummary{ID: s.Subscriber})
			result.TotalSubscribers++
		}
	}
	return result, nil
}

func (r *fakeSubscriptionRepo) GetSubscribedChannels(_ context.Context, subscriberID primitive.ObjectID) (*models.SubscribedChannels, error) {
	result := &models.SubscribedChannels{SubscribedChannelList: []models.UserSummary{}}
	for _, s := range r.subs {
		if s.Subscriber == subscriberID {
			result.SubscribedChannelList = append(result.SubscribedChannelList, models.UserSummary{ID: s.Channel})
			result.TotalSubscribedChannels++
		}
	}
	return result, nil
}

func (r *fakeSubscriptionRepo) GetLatestVideosFromSubscriptions(_ context.Context, subscriberID primitive.ObjectID) ([]models.VideoWithOwner, error) {
	return []models.VideoWithOwner{}, nil
}

func (r *fakeSubscriptionRepo) CountByChannel(_ context.Context, channelID primitive.ObjectID) (int64, error) {
	var count int64
	for _, s := range r.subs {
		if s.Channel == channelID {
			count++
		}
	}
	return count, nil
}

type fakePlaylistRepo struct {
	playlists map[primitive.ObjectID]*models.Playlist
}

func newFakePlaylistRepo() *fakePlaylistRepo {
	return &fakePlaylistRepo{playlists: map[primitive.ObjectID]*models.Playlist{}}
}

func (r *fakePlaylistRepo) CreatePlaylist(_ context.Context, playlist *models.Playlist) error {
	playlist.ID = primitive.NewObjectID()
	playlist.CreatedAt = time.Now()
	playlist.UpdatedAt = time.Now()
	if playlist.Videos == nil {
		playlist.Videos = []primitive.ObjectID{}
	}
	r.playlists[playlist.ID] = playlist
	return nil
}

func (r *fakePlaylistRepo) GetPlaylistByID(_ context.Context, id string) (*models.Playlist, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	playlist, ok := r.playlists[objID]
	if !ok {
		return nil, repositories.ErrPlaylistNotFound
	}
	return playlist, nil
}

func (r *fakePlaylistRepo) GetPlaylistWithVideos(_ context.Context, id primitive.ObjectID) (*models.PlaylistWithVideos, error) {
	playlist, ok := r.playlists[id]
	if !ok {
		return nil, repositories.ErrPlaylistNotFound
	}
	return &models.PlaylistWithVideos{
		ID:          playlist.ID,
		Name:        playlist.Name,
		Description: playlist.Description,
		Videos:      []models.Video{},
		Owner:       playlist.Owner,
		CreatedAt:   playlist.CreatedAt,
		UpdatedAt:   playlist.UpdatedAt,
	}, nil
}

func (r *fakePlaylistRepo) ListByOwner(_ context.Context, ownerID primitive.ObjectID) ([]models.Playlist, error) {
	playlists := []models.Playlist{}
	for _, p := range r.playlists {
		if p.Owner == ownerID {
			playlists = append(playlists, *p)
		}
	}
	return playlists, nil
}

func (r *fakePlaylistRepo) AddVideo(_ context.Context, playlistID, videoID primitive.ObjectID) error {
	playlist, ok := r.playlists[playlistID]
	if !ok {
		return repositories.ErrPlaylistNotFound
	}
	for _, id := range playlist.Videos {
		if id == videoID {
			return nil
		}
	}
	playlist.Videos = append(playlist.Videos, videoID)
	return nil
}

func (r *fakePlaylistRepo) RemoveVideo(_ context.Context, playlistID, videoID primitive.ObjectID) error {
	playlist, ok := r.playlists[playlistID]
	if !ok {
		return repositories.ErrPlaylistNotFound
	}
	videos := playlist.Videos[:0]
	for _, id := range playlist.Videos {
		if id != videoID {
			videos = append(videos, id)
		}
	}
	playlist.Videos = videos
	return nil
}

func (r *fakePlaylistRepo) UpdatePlaylist(_ context.Context, id primitive.ObjectID, name, description string) (*models.Playlist, error) {
	playlist, ok := r.playlists[id]
	if !ok {
		return nil, repositories.ErrPlaylistNotFound
	}
	if name != "" {
		playlist.Name = name
	}
	if description != "" {
		playlist.Description = description
	}
	playlist.UpdatedAt = time.Now()
	return playlist, nil
}

func (r *fakePlaylistRepo) DeletePlaylist(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.playlists[id]; !ok {
		return repositories.ErrPlaylistNotFound
	}
	delete(r.playlists, id)
	return nil
}

func (r *fakePlaylistRepo) PullVideoFromAll(ctx context.Context, videoID primitive.ObjectID) error {
	for id := range r.playlists {
		if err := r.RemoveVideo(ctx, id, videoID); err != nil {
			return err
		}
	}
	return nil
}

type fakeTweetRepo struct {
	tweets map[primitive.ObjectID]*models.Tweet
	order  []primitive.ObjectID
}

func newFakeTweetRepo() *fakeTweetRepo {
	return &fakeTweetRepo{tweets: map[primitive.ObjectID]*models.Tweet{}}
}

func (r *fakeTweetRepo) CreateTweet(_ context.Context, tweet *models.Tweet) error {
	tweet.ID = primitive.NewObjectID()
	tweet.CreatedAt = time.Now()
	tweet.UpdatedAt = time.Now()
	r.tweets[tweet.ID] = tweet
	r.order = append(r.order, tweet.ID)
	return nil
}

func (r *fakeTweetRepo) GetTweetByID(_ context.Context, id string) (*models.Tweet, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	tweet, ok := r.tweets[objID]
	if !ok {
		return nil, repositories.ErrTweetNotFound
	}
	return tweet, nil
}

func (r *fakeTweetRepo) ListByOwner(_ context.Context, ownerID primitive.ObjectID) ([]models.Tweet, error) {
	tweets := []models.Tweet{}
	for i := len(r.order) - 1; i >= 0; i-- {
		if t, ok := r.tweets[r.order[i]]; ok && t.Owner == ownerID {
			tweets = append(tweets, *t)
		}
	}
	return tweets, nil
}

func (r *fakeTweetRepo) UpdateTweet(_ context.Context, id primitive.ObjectID, content string) (*models.Tweet, error) {
	tweet, ok := r.tweets[id]
	if !ok {
		return nil, repositories.ErrTweetNotFound
	}
	tweet.Content = content
	tweet.UpdatedAt = time.Now()
	return tweet, nil
}

func (r *fakeTweetRepo) DeleteTweet(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.tweets[id]; !ok {
		return repositories.ErrTweetNotFound
	}
	delete(r.tweets, id)
	return nil
}

type fakeMediaService struct {
	uploads int
	deleted []string
}

func (s *fakeMediaService) Upload(_ context.Context, localPath string) (*media.Asset, error) {
	s.uploads++
	id := primitive.NewObjectID().Hex()
	return &media.Asset{
		URL:      "http://cdn.test/videotube/" + id,
		PublicID: id,
		Duration: 42,
	}, nil
}

func (s *fakeMediaService) Delete(_ context.Context, publicID string) error {
	s.deleted = append(s.deleted, publicID)
	return nil
}
