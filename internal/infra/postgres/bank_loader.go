package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"
	"millionaire-game-service/internal/domain"
)

// BankLoader loads the question bank from Postgres.
type BankLoader struct {
	pool *pgxpool.Pool
}

func NewBankLoader(pool *pgxpool.Pool) *BankLoader {
	return &BankLoader{pool: pool}
}

func (l *BankLoader) LoadBank(ctx context.Context) (domain.QuestionBank, error) {
	rows, err := l.pool.Query(ctx,
		`SELECT id, text, level, answer1, answer2, answer3, answer4 FROM questions ORDER BY level, id`)
	if err != nil {
		return domain.QuestionBank{}, fmt.Errorf("load questions: %w", err)
	}
	defer rows.Close()

	bank := domain.QuestionBank{ID: "default"}
	for rows.Next() {
		var q domain.Question
		if err := rows.Scan(&q.ID, &q.Text, &q.Level, &q.Answers[0], &q.Answers[1], &q.Answers[2], &q.Answers[3]); err != nil {
			return domain.QuestionBank{}, fmt.Errorf("scan question: %w", err)
		}
		bank.Questions = append(bank.Questions, q)
	}
	if err := rows.Err(); err != nil {
		return domain.QuestionBank{}, fmt.Errorf("read questions: %w", err)
	}
	if len(bank.Questions) == 0 {
		return domain.QuestionBank{}, domain.ErrBankNotFound
	}
	return bank, nil
}
