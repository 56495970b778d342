package mail

import (
	"context"
	"log"
	"time"

	"github.com/Najnomics/business-analysis-ai-V2/internal/domain/analysis"
	"github.com/Najnomics/business-analysis-ai-V2/internal/domain/users"
)

// Notifier mails the owner when an analysis runs to completion. Lookup
// failures are logged and swallowed: notification is never load-bearing.
type Notifier struct {
	Users  users.Repository
	Mailer *Mailer
}

func (n *Notifier) AnalysisCompleted(userID string, a *analysis.BusinessAnalysis) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	u, err := n.Users.FindByID(ctx, users.UserID(userID))
	if err != nil {
		log.Printf("completion notice for analysis %s: owner lookup: %v", a.ID, err)
		return
	}
	n.Mailer.SendAnalysisComplete(
		u.Name, u.Email,
		a.BusinessInput,
		a.Consensus.FrameworksAnalyzed,
		a.Consensus.ConsensusScore,
		len(a.Consensus.ModelsUsed),
	)
}
