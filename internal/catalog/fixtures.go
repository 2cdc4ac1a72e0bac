// Shelfmate - Social Movie and Book Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

package catalog

import "github.com/tomtom215/shelfmate/internal/models"

// PosterBaseURL prefixes TMDB poster paths at the w500 size.
const PosterBaseURL = "https://image.tmdb.org/t/p/w500"

func movie(id, title, poster, released string) Detail {
	return Detail{
		Summary: Summary{
			ID:    models.ContentID(id),
			Type:  models.ContentMovie,
			Title: title,
			Image: PosterBaseURL + poster,
		},
		Released: released,
	}
}

func book(id, title, description string, creators ...string) Detail {
	return Detail{
		Summary: Summary{
			ID:    models.ContentID(id),
			Type:  models.ContentBook,
			Title: title,
		},
		Description: description,
		Creators:    creators,
	}
}

// MovieFixtures are TMDB movies keyed by their real TMDB ids.
var MovieFixtures = []Detail{
	movie("533535", "데드풀 & 울버린", "/8Vt6mWEReuy4Of61Lnj5Xj704m8.jpg", "2024"),
	movie("519182", "분노의 질주: 더 맥시멈", "/fiVW06jE7z9YnO4trhaMEdclSiC.jpg", "2023"),
	movie("615656", "메갈로돈 2: 더 트렌치", "/4m1Au3YkjqsxF8iwQy0fPYSxE0h.jpg", "2023"),
	movie("298618", "플래시", "/rktDFPbfHfUbArZ6OOOKsXcv0Bm.jpg", "2023"),
	movie("502356", "슈퍼 마리오 브라더스", "/qNBAXBIQlnOThrVvA6mA2B5ggV6.jpg", "2023"),
	movie("447365", "가디언즈 오브 갤럭시 VOL. 3", "/r2J02Z2OpNTctfOSN1Ydgii51I3.jpg", "2023"),
	movie("653346", "존 윅 4", "/vZloFAK7NmvMGKE7VkF5UHaz0I.jpg", "2023"),
	movie("640146", "앤트맨과 와스프: 퀀텀매니아", "/sz6mTIDDQmR3DYgJudiTmoW2gR5.jpg", "2023"),
	movie("76600", "아바타: 물의 길", "/t6HIqrRAclMCA60NsSmeqe9RmNV.jpg", "2022"),
	movie("438148", "미니언즈: 라이즈 오브 그루", "/wKiOkZTN9lUUUNZLmtnwubZYONg.jpg", "2022"),
	movie("505642", "블랙 팬서: 와칸다 포에버", "/sv1xJUazXeYqALzczSZ3O6nkH75.jpg", "2022"),
	movie("436270", "블랙 아담", "/pFlaoHTZeyNkG83vxsAJiGzfSsa.jpg", "2022"),
	movie("609681", "더 배트맨", "/74xTEgt7R36Fpooo50r9T25onhq.jpg", "2022"),
	movie("634649", "스파이더맨: 노 웨이 홈", "/1g0dhYtq4irTY1GPXvft6k4YLjm.jpg", "2021"),
	movie("524434", "이터널스", "/bcCBq9N1EMo3daNIjWJ8kYvrQm6.jpg", "2021"),
	movie("566525", "샹치와 텐 링즈의 전설", "/1BIoJGKbXjdFDAqUEiA2VHqkK1Z.jpg", "2021"),
	movie("460465", "모탈 컴뱃", "/nkayOAUBUu4mMvyNf9iHSUiPjF1.jpg", "2021"),
	movie("399566", "고질라 vs. 콩", "/pgqgaUx1cJb5oZQQ5v0tNARCeBp.jpg", "2021"),
}

// BookFixtures are the books the seed playlists search for.
var BookFixtures = []Detail{
	book("bk-midnight-library", "미드나잇 라이브러리", "삶과 후회 사이의 도서관", "매트 헤이그"),
	book("bk-almond", "아몬드", "감정을 느끼지 못하는 소년의 성장기", "손원평"),
	book("bk-dallergut", "달러구트 꿈 백화점", "꿈을 사고파는 백화점 이야기", "이미예"),
	book("bk-uncanny-store", "불편한 편의점", "청파동 골목 편의점의 사람들", "김호연"),
	book("bk-biology-cafe", "하리하라의 생물학 카페", "생물학을 카페에서 듣듯이", "이은희"),
	book("bk-tyranny-of-merit", "공정하다는 착각", "능력주의는 모두에게 공정한가", "마이클 샌델"),
	book("bk-tteokbokki", "죽고 싶지만 떡볶이는 먹고 싶어", "우울과 일상에 대한 에세이", "백세희"),
	book("bk-trend-korea-2024", "트렌드 코리아 2024", "2024년 소비 트렌드 전망", "김난도"),
	book("bk-how-to-live", "어떻게 살 것인가", "삶을 대하는 태도에 관하여", "유시민"),
	book("bk-live-as-myself", "나는 나로 살기로 했다", "나를 지키는 연습", "김수현"),
	book("bk-justice", "정의란 무엇인가", "정의에 관한 철학 강의", "마이클 샌델"),
	book("bk-cosmos", "코스모스", "우주와 인간에 대한 이야기", "칼 세이건"),
	book("bk-sapiens", "사피엔스", "유인원에서 사이보그까지", "유발 하라리"),
	book("bk-one-piece", "원피스", "해적왕을 꿈꾸는 소년의 모험", "오다 에이치로"),
	book("bk-joy-of-reading", "책읽기의 즐거움", "읽는 삶에 대한 산문"),
}

// Movies returns a static movie catalog over MovieFixtures.
func Movies() *Static {
	return NewStatic(MovieFixtures)
}

// Books returns a static book catalog over BookFixtures.
func Books() *Static {
	return NewStatic(BookFixtures)
}

// Fixtures returns both static catalogs.
func Fixtures() Set {
	return Set{Movies: Movies(), Books: Books()}
}
