package migrate

import (
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/prodboard/prodboard/internal/frontmatter"
	"github.com/prodboard/prodboard/internal/models"
	"github.com/prodboard/prodboard/internal/services/gitlab"
)

const noMetadataError = "No valid YAML data found in body"

// Summary aggregates the counters of one import run
type Summary struct {
	RunID    string
	Migrated int
	Failed   int
	Skipped  int
}

// NotesImporter migrates the notes of configured tickets into Feature or
// UiUxRequest rows. Records are processed strictly sequentially: the
// ledger's check-then-write is only safe single-threaded.
type NotesImporter struct {
	db         *gorm.DB
	client     *gitlab.Client
	ledger     *Ledger
	resolver   *ProductResolver
	entityType string
	ticketIIDs []int64
}

// NewNotesImporter creates a notes-based importer for one entity type
func NewNotesImporter(db *gorm.DB, client *gitlab.Client, entityType string, ticketIIDs []int64) *NotesImporter {
	return &NotesImporter{
		db:         db,
		client:     client,
		ledger:     NewLedger(db),
		resolver:   NewProductResolver(db),
		entityType: entityType,
		ticketIIDs: ticketIIDs,
	}
}

// Run drives the pipeline to completion: page through every configured
// ticket's notes, migrate each record, print the final summary. A notes
// transport failure ends that ticket only; the run itself never aborts on
// per-record errors.
func (i *NotesImporter) Run() (*Summary, error) {
	sum := &Summary{RunID: uuid.NewString()}
	log.Printf("🚀 Importing %s records from %d ticket(s) (run %s)", i.entityType, len(i.ticketIIDs), sum.RunID)

	for _, iid := range i.ticketIIDs {
		page := 1
		for {
			notes, err := i.client.FetchNotes(iid, page)
			if err != nil {
				var transport *gitlab.TransportError
				if errors.As(err, &transport) {
					log.Printf("⚠️  %v — treating as end of data for ticket %d", err, iid)
					break
				}
				return sum, err
			}

			for _, note := range notes {
				i.processNote(iid, note, sum)
			}

			if len(notes) < gitlab.PageSize {
				break
			}
			page++
		}
	}

	printSummary(i.entityType, sum)
	printVerification(i.db, i.entityType)
	return sum, nil
}

func (i *NotesImporter) processNote(ticketIID int64, note gitlab.Note, sum *Summary) {
	// Machine-generated notes are not feature data. No ledger entry.
	if note.System {
		return
	}

	done, err := i.ledger.IsCompleted(i.entityType, note.ID)
	if err != nil {
		log.Printf("❌ Ledger check failed for note %d: %v", note.ID, err)
		sum.Failed++
		return
	}
	if done {
		sum.Skipped++
		return
	}

	fm := frontmatter.Extract(note.Body)
	if fm == nil {
		i.recordFailure(note.ID, noMetadataError, sum)
		return
	}
	meta := ParseMetadata(fm.Attributes)

	productID, err := i.resolver.Resolve(meta.ProductRef)
	if err != nil {
		i.recordFailure(note.ID, err.Error(), sum)
		return
	}

	// Mark the attempt before writing: a crash mid-transaction leaves a
	// pending row, which the next run simply retries.
	if err := i.ledger.RecordOutcome(i.entityType, note.ID, Outcome{Status: models.MigrationPending}); err != nil {
		log.Printf("❌ Ledger write failed for note %d: %v", note.ID, err)
		sum.Failed++
		return
	}

	var newID uint
	txErr := i.db.Transaction(func(tx *gorm.DB) error {
		if i.entityType == models.EntityUiUxRequest {
			row := RequestFromNote(note, meta)
			row.ProductID = productID
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			newID = row.ID
			return nil
		}

		row := FeatureFromNote(note, ticketIID, i.client.ProjectID, meta)
		row.ProductID = productID
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		if err := replacePlatforms(tx, row.ID, meta.Platforms); err != nil {
			return err
		}
		newID = row.ID
		return nil
	})
	if txErr != nil {
		i.recordFailure(note.ID, txErr.Error(), sum)
		return
	}

	i.recordSuccess(note.ID, newID, sum)
}

func (i *NotesImporter) recordFailure(gitlabID int64, msg string, sum *Summary) {
	sum.Failed++
	if err := i.ledger.RecordOutcome(i.entityType, gitlabID, Outcome{Status: models.MigrationFailed, ErrorMessage: msg}); err != nil {
		// Best effort only; the failure itself is already counted
		log.Printf("⚠️  Could not record failure for %s %d: %v", i.entityType, gitlabID, err)
	}
}

func (i *NotesImporter) recordSuccess(gitlabID int64, newID uint, sum *Summary) {
	err := i.ledger.RecordOutcome(i.entityType, gitlabID, Outcome{PostgresID: &newID, Status: models.MigrationCompleted})
	if err != nil {
		log.Printf("❌ Ledger update failed for %s %d: %v", i.entityType, gitlabID, err)
		sum.Failed++
		return
	}
	sum.Migrated++
}

// IssuesImporter migrates labeled issues into Feature rows. Issues carry
// their metadata either as standard front-matter or as a fenced yaml code
// block inside the markdown description; both conventions are accepted.
type IssuesImporter struct {
	db       *gorm.DB
	client   *gitlab.Client
	ledger   *Ledger
	resolver *ProductResolver
	labels   []string
}

// NewIssuesImporter creates an issue-based importer over the given labels
func NewIssuesImporter(db *gorm.DB, client *gitlab.Client, labels []string) *IssuesImporter {
	return &IssuesImporter{
		db:       db,
		client:   client,
		ledger:   NewLedger(db),
		resolver: NewProductResolver(db),
		labels:   labels,
	}
}

// Run pages through every label category in turn. Unlike the notes path, a
// transport failure here is fatal and aborts the whole run.
func (i *IssuesImporter) Run() (*Summary, error) {
	sum := &Summary{RunID: uuid.NewString()}
	log.Printf("🚀 Importing features from issues with labels %v (run %s)", i.labels, sum.RunID)

	for _, label := range i.labels {
		page := 1
		for {
			issues, err := i.client.FetchIssues(page, label)
			if err != nil {
				return sum, fmt.Errorf("label %q: %w", label, err)
			}

			for _, issue := range issues {
				i.processIssue(issue, sum)
			}

			if len(issues) < gitlab.PageSize {
				break
			}
			page++
		}
	}

	printSummary(models.EntityFeature, sum)
	printVerification(i.db, models.EntityFeature)
	return sum, nil
}

func (i *IssuesImporter) processIssue(issue gitlab.Issue, sum *Summary) {
	done, err := i.ledger.IsCompleted(models.EntityFeature, issue.ID)
	if err != nil {
		log.Printf("❌ Ledger check failed for issue %d: %v", issue.ID, err)
		sum.Failed++
		return
	}
	if done {
		sum.Skipped++
		return
	}

	fm := frontmatter.Extract(issue.Description)
	if fm == nil {
		fm = frontmatter.ExtractFenced(issue.Description)
	}
	if fm == nil {
		i.recordFailure(issue.ID, noMetadataError, sum)
		return
	}
	meta := ParseMetadata(fm.Attributes)

	productID, err := i.resolver.Resolve(meta.ProductRef)
	if err != nil {
		i.recordFailure(issue.ID, err.Error(), sum)
		return
	}

	if err := i.ledger.RecordOutcome(models.EntityFeature, issue.ID, Outcome{Status: models.MigrationPending}); err != nil {
		log.Printf("❌ Ledger write failed for issue %d: %v", issue.ID, err)
		sum.Failed++
		return
	}

	var newID uint
	txErr := i.db.Transaction(func(tx *gorm.DB) error {
		row := FeatureFromIssue(issue, meta)
		row.ProductID = productID
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		if err := replacePlatforms(tx, row.ID, meta.Platforms); err != nil {
			return err
		}
		newID = row.ID
		return nil
	})
	if txErr != nil {
		i.recordFailure(issue.ID, txErr.Error(), sum)
		return
	}

	err = i.ledger.RecordOutcome(models.EntityFeature, issue.ID, Outcome{PostgresID: &newID, Status: models.MigrationCompleted})
	if err != nil {
		log.Printf("❌ Ledger update failed for issue %d: %v", issue.ID, err)
		sum.Failed++
		return
	}
	sum.Migrated++
}

func (i *IssuesImporter) recordFailure(gitlabID int64, msg string, sum *Summary) {
	sum.Failed++
	if err := i.ledger.RecordOutcome(models.EntityFeature, gitlabID, Outcome{Status: models.MigrationFailed, ErrorMessage: msg}); err != nil {
		log.Printf("⚠️  Could not record failure for feature %d: %v", gitlabID, err)
	}
}

// replacePlatforms swaps the full platform set of a feature: delete all,
// re-insert. Never diffed.
func replacePlatforms(tx *gorm.DB, featureID uint, platforms []string) error {
	if err := tx.Where("feature_id = ?", featureID).Delete(&models.FeaturePlatform{}).Error; err != nil {
		return err
	}
	for _, platform := range platforms {
		row := models.FeaturePlatform{FeatureID: featureID, Platform: platform}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}

func printSummary(entityType string, sum *Summary) {
	fmt.Println()
	fmt.Printf("📊 Migration summary for %s (run %s)\n", entityType, sum.RunID)
	fmt.Printf("   ✅ migrated: %d\n", sum.Migrated)
	fmt.Printf("   ❌ failed:   %d\n", sum.Failed)
	fmt.Printf("   ⏭️  skipped:  %d\n", sum.Skipped)
}

// printVerification reports how many target rows ended up with a resolved
// product reference, as a post-hoc sanity check on the fuzzy lookup.
func printVerification(db *gorm.DB, entityType string) {
	var model interface{} = &models.Feature{}
	if entityType == models.EntityUiUxRequest {
		model = &models.UiUxRequest{}
	}

	var linked, unlinked int64
	db.Model(model).Where("product_id IS NOT NULL").Count(&linked)
	db.Model(model).Where("product_id IS NULL").Count(&unlinked)
	fmt.Printf("   🔎 product links: %d resolved, %d without product\n", linked, unlinked)
}
