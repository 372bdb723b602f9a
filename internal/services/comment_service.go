package services

import (
	"errors"
	"fmt"

	"github.com/hinagiku/taskboard-api/internal/models"
	"github.com/hinagiku/taskboard-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrCommentNotFound  = errors.New("comment not found")
	ErrNotCommentAuthor = errors.New("only the comment author can perform this action")
)

// CommentService handles comment business logic.
type CommentService struct {
	commentRepo repository.CommentRepository
	taskRepo    repository.TaskRepository
}

// NewCommentService creates a new CommentService.
func NewCommentService(commentRepo repository.CommentRepository, taskRepo repository.TaskRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		taskRepo:    taskRepo,
	}
}

// ListForTask lists all comments on a task. Any authenticated user may read
// comments on any existing task.
func (s *CommentService) ListForTask(taskID uint64) ([]models.Comment, error) {
	if err := s.ensureTaskExists(taskID); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByTask(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	return comments, nil
}

// AddCommentInput represents input for commenting on a task.
type AddCommentInput struct {
	TaskID   uint64
	AuthorID uint64
	Content  string
}

// AddComment adds a comment to a task.
func (s *CommentService) AddComment(input AddCommentInput) (*models.Comment, error) {
	if err := s.ensureTaskExists(input.TaskID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Content:  input.Content,
		TaskID:   input.TaskID,
		AuthorID: input.AuthorID,
	}

	if err := s.commentRepo.Create(comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	return comment, nil
}

// UpdateComment replaces a comment's content. Author only, regardless of
// who owns the task.
func (s *CommentService) UpdateComment(commentID, actorID uint64, content string) (*models.Comment, error) {
	comment, err := s.findOwned(commentID, actorID)
	if err != nil {
		return nil, err
	}

	comment.Content = content

	if err := s.commentRepo.Update(comment); err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}

	return comment, nil
}

// DeleteComment removes a comment. Author only.
func (s *CommentService) DeleteComment(commentID, actorID uint64) error {
	comment, err := s.findOwned(commentID, actorID)
	if err != nil {
		return err
	}

	if err := s.commentRepo.Delete(comment.ID); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	return nil
}

func (s *CommentService) findOwned(commentID, actorID uint64) (*models.Comment, error) {
	comment, err := s.commentRepo.FindByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to find comment: %w", err)
	}

	if comment.AuthorID != actorID {
		return nil, ErrNotCommentAuthor
	}

	return comment, nil
}

func (s *CommentService) ensureTaskExists(taskID uint64) error {
	if _, err := s.taskRepo.FindByID(taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}
	return nil
}
