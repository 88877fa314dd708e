package store

// SQL query constants organized by entity.
// All SQL lives here; PostgresStore methods reference these constants.

// Deal queries.
const (
	selectDeals = `SELECT deal_id, title, price_current, price_original, discount_rate,
	source, merchant, url, category, posted_at,
	fingerprint, popularity_score, trust_score, COALESCE(extra, '{}'), created_at
FROM deals`

	queryInsertDeal = `
		INSERT INTO deals (
			deal_id, title, price_current, price_original, discount_rate,
			source, merchant, url, category, posted_at,
			fingerprint, popularity_score, trust_score, extra, created_at
		) VALUES (
			@deal_id, @title, @price_current, @price_original, @discount_rate,
			@source, @merchant, @url, @category, @posted_at,
			@fingerprint, @popularity_score, @trust_score, @extra, now()
		)
		ON CONFLICT (deal_id) DO NOTHING
		RETURNING created_at`

	queryUpsertDeal = `
		INSERT INTO deals (
			deal_id, title, price_current, price_original, discount_rate,
			source, merchant, url, category, posted_at,
			fingerprint, popularity_score, trust_score, extra, created_at
		) VALUES (
			@deal_id, @title, @price_current, @price_original, @discount_rate,
			@source, @merchant, @url, @category, @posted_at,
			@fingerprint, @popularity_score, @trust_score, @extra, now()
		)
		ON CONFLICT (deal_id) DO UPDATE SET
			title = EXCLUDED.title,
			price_current = EXCLUDED.price_current,
			price_original = EXCLUDED.price_original,
			discount_rate = EXCLUDED.discount_rate,
			source = EXCLUDED.source,
			merchant = EXCLUDED.merchant,
			url = EXCLUDED.url,
			category = EXCLUDED.category,
			posted_at = EXCLUDED.posted_at,
			fingerprint = EXCLUDED.fingerprint,
			popularity_score = EXCLUDED.popularity_score,
			trust_score = EXCLUDED.trust_score,
			extra = EXCLUDED.extra
		RETURNING created_at`

	queryGetDeal = selectDeals + `
		WHERE deal_id = $1`

	queryListAllDeals = selectDeals + `
		ORDER BY posted_at DESC`

	queryCountDeals = `SELECT COUNT(*) FROM deals`
)

// Profile queries.
const (
	selectProfiles = `SELECT profile_id, categories, keywords, brands, exclude_keywords,
	price_max, min_discount_rate, created_at, updated_at
FROM profiles`

	queryUpsertProfile = `
		INSERT INTO profiles (
			profile_id, categories, keywords, brands, exclude_keywords,
			price_max, min_discount_rate, created_at, updated_at
		) VALUES (
			@profile_id, @categories, @keywords, @brands, @exclude_keywords,
			@price_max, @min_discount_rate, now(), now()
		)
		ON CONFLICT (profile_id) DO UPDATE SET
			categories = EXCLUDED.categories,
			keywords = EXCLUDED.keywords,
			brands = EXCLUDED.brands,
			exclude_keywords = EXCLUDED.exclude_keywords,
			price_max = EXCLUDED.price_max,
			min_discount_rate = EXCLUDED.min_discount_rate,
			updated_at = now()
		RETURNING created_at, updated_at`

	queryGetProfile = selectProfiles + `
		WHERE profile_id = $1`

	queryListProfiles = selectProfiles + `
		ORDER BY updated_at DESC`

	queryDeleteProfile = `DELETE FROM profiles WHERE profile_id = $1`

	queryCountProfiles = `SELECT COUNT(*) FROM profiles`
)

// Alert queries.
const (
	queryCreateAlert = `
		INSERT INTO alerts (profile_id, deal_id, match_score, created_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (profile_id, deal_id) DO NOTHING
		RETURNING id, created_at`

	queryListPendingAlerts = `
		SELECT id, profile_id, deal_id, match_score, notified, notified_at, created_at
		FROM alerts
		WHERE notified = false
		ORDER BY created_at ASC`

	queryMarkAlertsNotified = `
		UPDATE alerts SET
			notified = true,
			notified_at = now()
		WHERE id = ANY($1)`
)
