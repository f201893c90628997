// Package access holds the class-lock navigation guard: a short-circuiting
// validation pipeline that decides, for each class/subject/chapter page,
// whether to serve it or redirect the user back to their selected class.
package access

import (
	"context"
	"fmt"

	"github.com/trezcool/mazoezi/core/content"
	"github.com/trezcool/mazoezi/core/profile"
)

const SelectClassPath = "/select-class"

// Decision is the single result type of the guard: either Allow or a redirect.
type Decision struct {
	Allow      bool
	RedirectTo string
}

func allow() Decision {
	return Decision{Allow: true}
}

func redirect(path string) Decision {
	return Decision{RedirectTo: path}
}

func ClassPath(classID int) string {
	return fmt.Sprintf("/class/%d", classID)
}

func SubjectPath(classID, subjectID int) string {
	return fmt.Sprintf("/class/%d/subject/%d", classID, subjectID)
}

func ChapterPath(classID, subjectID, chapterID int) string {
	return fmt.Sprintf("/class/%d/subject/%d/chapter/%d", classID, subjectID, chapterID)
}

type Guard struct {
	profileSvc *profile.Service
	contentSvc *content.Service
}

func NewGuard(profileSvc *profile.Service, contentSvc *content.Service) *Guard {
	return &Guard{profileSvc: profileSvc, contentSvc: contentSvc}
}

// Authorize runs the ordered checks for a class-scoped page; the first failing
// check wins. The caller must have authenticated the user already. A row that
// is missing or fails an ownership check redirects silently; a store error is
// returned verbatim.
func (g *Guard) Authorize(ctx context.Context, userID string, classID int, subjectID, chapterID *int) (Decision, error) {
	prof, err := g.profileSvc.Get(ctx, userID)
	if err != nil {
		if err == profile.ErrNotFound {
			return redirect(SelectClassPath), nil
		}
		return Decision{}, err
	}

	// soft lock: another class's URL silently rewrites to the selected class
	if classID != prof.SelectedClassID {
		return redirect(ClassPath(prof.SelectedClassID)), nil
	}

	if subjectID != nil {
		sub, err := g.contentSvc.Subject(ctx, *subjectID)
		if err != nil {
			if err == content.ErrSubjectNotFound {
				return redirect(ClassPath(prof.SelectedClassID)), nil
			}
			return Decision{}, err
		}
		if sub.ClassID != prof.SelectedClassID {
			return redirect(ClassPath(prof.SelectedClassID)), nil
		}

		if chapterID != nil {
			ch, err := g.contentSvc.Chapter(ctx, *chapterID)
			if err != nil {
				if err == content.ErrChapterNotFound {
					return redirect(SubjectPath(prof.SelectedClassID, *subjectID)), nil
				}
				return Decision{}, err
			}
			if ch.SubjectID != *subjectID {
				return redirect(SubjectPath(prof.SelectedClassID, *subjectID)), nil
			}
		}
	}

	return allow(), nil
}

// SelectedClass is the guard's profile lookup for pages that only need the
// selected class (dashboard, select-class).
func (g *Guard) SelectedClass(ctx context.Context, userID string) (int, Decision, error) {
	prof, err := g.profileSvc.Get(ctx, userID)
	if err != nil {
		if err == profile.ErrNotFound {
			return 0, redirect(SelectClassPath), nil
		}
		return 0, Decision{}, err
	}
	return prof.SelectedClassID, allow(), nil
}
